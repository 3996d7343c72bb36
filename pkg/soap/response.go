package soap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

var (
	// ErrMalformed is returned when a response is not a SOAP envelope
	ErrMalformed = errors.New("malformed SOAP response")
	// ErrFault matches every *FaultError
	ErrFault = errors.New("SOAP fault")
)

// FaultError is a SOAP fault returned by the web service
type FaultError struct {
	Code   string
	Reason string
	Detail string
}

func (e *FaultError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("SOAP fault: %s", e.Reason)
	}
	return fmt.Sprintf("SOAP fault %s: %s", e.Code, e.Reason)
}

// Is makes errors.Is(err, ErrFault) match
func (e *FaultError) Is(target error) bool {
	return target == ErrFault
}

// Response is a parsed web service response
type Response struct {
	// Version is "1.1" or "1.2", from the envelope namespace
	Version string
	// Body is the SOAP Body element
	Body *etree.Element
	// Result is the first element carrying a cStat child, e.g. retConsStatServ
	Result *etree.Element
	// CStat and XMotivo are the status code and message of Result
	CStat   string
	XMotivo string
}

// ParseResponse parses a SOAP 1.1 or 1.2 response envelope. A Fault body is
// returned as *FaultError along with the partially filled Response.
func ParseResponse(raw []byte) (*Response, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: empty document", ErrMalformed)
	}
	if root.Tag != "Envelope" {
		return nil, fmt.Errorf("%w: root element must be Envelope, got %s", ErrMalformed, root.Tag)
	}

	resp := &Response{Version: "1.1"}
	if root.NamespaceURI() == NsSOAP12 {
		resp.Version = "1.2"
	}

	resp.Body = root.SelectElement("Body")
	if resp.Body == nil {
		return nil, fmt.Errorf("%w: SOAP Body not found", ErrMalformed)
	}

	if fault := resp.Body.SelectElement("Fault"); fault != nil {
		return resp, parseFault(fault)
	}

	resp.Result = findResult(resp.Body)
	if resp.Result != nil {
		resp.CStat = childText(resp.Result, "cStat")
		resp.XMotivo = childText(resp.Result, "xMotivo")
	}

	return resp, nil
}

// Find returns the trimmed text of the first element matching path, relative
// to the Body. Returns an empty string if the path is not found.
func (r *Response) Find(path string) string {
	if r == nil || r.Body == nil || path == "" {
		return ""
	}
	if elem := r.Body.FindElement(path); elem != nil {
		return strings.TrimSpace(elem.Text())
	}
	return ""
}

// ResultXML serializes the result element, or returns "" when there is none
func (r *Response) ResultXML() (string, error) {
	if r == nil || r.Result == nil {
		return "", nil
	}
	doc := etree.NewDocument()
	doc.SetRoot(r.Result.Copy())
	return doc.WriteToString()
}

// findResult descends through the *Result wrapper elements to the first
// element carrying a cStat child
func findResult(body *etree.Element) *etree.Element {
	elem := body
	for {
		children := elem.ChildElements()
		if len(children) == 0 {
			return nil
		}
		elem = children[0]
		if elem.SelectElement("cStat") != nil {
			return elem
		}
	}
}

func parseFault(fault *etree.Element) error {
	fe := &FaultError{}

	// SOAP 1.2
	if code := fault.FindElement("Code/Value"); code != nil {
		fe.Code = strings.TrimSpace(code.Text())
		fe.Reason = childText(fault.SelectElement("Reason"), "Text")
		fe.Detail = innerXML(fault.SelectElement("Detail"))
		return fe
	}

	// SOAP 1.1
	fe.Code = childText(fault, "faultcode")
	fe.Reason = childText(fault, "faultstring")
	fe.Detail = innerXML(fault.SelectElement("detail"))
	return fe
}

func childText(elem *etree.Element, tag string) string {
	if elem == nil {
		return ""
	}
	if child := elem.SelectElement(tag); child != nil {
		return strings.TrimSpace(child.Text())
	}
	return ""
}

func innerXML(elem *etree.Element) string {
	if elem == nil {
		return ""
	}
	var b strings.Builder
	for _, child := range elem.ChildElements() {
		doc := etree.NewDocument()
		doc.SetRoot(child.Copy())
		s, err := doc.WriteToString()
		if err != nil {
			continue
		}
		b.WriteString(s)
	}
	if b.Len() == 0 {
		return strings.TrimSpace(elem.Text())
	}
	return b.String()
}
