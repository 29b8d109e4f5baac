package catalog

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parameters maps parameter numbers to names, full names and the optional
// list of text values declared for each parameter.
type Parameters struct {
	names      map[uint16]string
	fullNames  map[uint16]string
	textValues map[uint16][]string
}

type xmlParam struct {
	Number     string `xml:"number,attr"`
	Name       string `xml:"name,attr"`
	FullName   string `xml:"fullname,attr"`
	TextValues []struct {
		Value string `xml:"value,attr"`
	} `xml:"TextValue"`
}

// LoadParameters reads a parameter description XML file.
func LoadParameters(path string) (*Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer f.Close()
	return ParseParameters(f)
}

// ParseParameters reads every <Param> element in the document, at any depth.
func ParseParameters(r io.Reader) (*Parameters, error) {
	p := &Parameters{
		names:      make(map[uint16]string),
		fullNames:  make(map[uint16]string),
		textValues: make(map[uint16][]string),
	}
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parameters xml: %v", ErrMalformed, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Param" {
			continue
		}
		var param xmlParam
		if err := dec.DecodeElement(&param, &start); err != nil {
			return nil, fmt.Errorf("%w: parameters xml: %v", ErrMalformed, err)
		}
		number, err := strconv.ParseUint(strings.TrimSpace(param.Number), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: param number %q: %v", ErrMalformed, param.Number, err)
		}
		n := uint16(number)
		p.names[n] = param.Name
		p.fullNames[n] = param.FullName
		texts := make([]string, 0, len(param.TextValues))
		for _, tv := range param.TextValues {
			texts = append(texts, tv.Value)
		}
		p.textValues[n] = texts
	}
	return p, nil
}

// Name returns the parameter name or UNKNOWN_<number> when absent.
func (p *Parameters) Name(number uint16) string {
	if p != nil {
		if name, ok := p.names[number]; ok {
			return name
		}
	}
	return "UNKNOWN_" + strconv.Itoa(int(number))
}

// FullName returns the descriptive name, or "" when absent.
func (p *Parameters) FullName(number uint16) string {
	if p == nil {
		return ""
	}
	return p.fullNames[number]
}

// TextValues returns the declared text values for a parameter.
func (p *Parameters) TextValues(number uint16) []string {
	if p == nil {
		return nil
	}
	return p.textValues[number]
}

// Len returns the number of known parameters.
func (p *Parameters) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}
