package handler

import (
	"encoding/xml"
	"strings"
)

// TwiML is the Twilio messaging response envelope. An empty Message slice
// renders the bare acknowledgment that stops gateway retries.
type TwiML struct {
	XMLName  xml.Name `xml:"Response"`
	Messages []string `xml:"Message"`
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>`

// RenderTwiML wraps a reply text in the outbound channel envelope. An empty
// reply produces an empty but well-formed acknowledgment.
func RenderTwiML(reply string) string {
	resp := TwiML{}
	if reply != "" {
		resp.Messages = []string{reply}
	}

	data, err := xml.Marshal(resp)
	if err != nil {
		// Marshalling a string slice cannot fail; keep the gateway happy anyway.
		return xmlHeader + "<Response></Response>"
	}

	var b strings.Builder
	b.WriteString(xmlHeader)
	b.Write(data)
	return b.String()
}
