package mail

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"net/mail"
	"strings"
)

var headerBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// ComposeMessage renders msg as an RFC 5322 plain-text message. Header
// values are stripped of line breaks and non-ASCII subjects are Q-encoded.
func ComposeMessage(msg Outgoing) ([]byte, error) {
	to := strings.TrimSpace(headerBreaks.Replace(msg.To))
	if to == "" {
		return nil, errors.New("recipient is required")
	}
	if _, err := mail.ParseAddressList(to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", to, err)
	}

	var b bytes.Buffer
	writeHeader(&b, "To", to)
	writeHeader(&b, "Subject", mime.QEncoding.Encode("utf-8", headerBreaks.Replace(msg.Subject)))
	if ref := strings.TrimSpace(headerBreaks.Replace(msg.InReplyTo)); ref != "" {
		writeHeader(&b, "In-Reply-To", ref)
		writeHeader(&b, "References", ref)
	}
	writeHeader(&b, "MIME-Version", "1.0")
	writeHeader(&b, "Content-Type", `text/plain; charset="UTF-8"`)
	writeHeader(&b, "Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")

	body := strings.ReplaceAll(msg.Body, "\r\n", "\n")
	b.WriteString(strings.ReplaceAll(body, "\n", "\r\n"))
	return b.Bytes(), nil
}

func writeHeader(b *bytes.Buffer, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}
