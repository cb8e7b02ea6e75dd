package providers

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"

	"github.com/nodewee/doc-translate/pkg/utils"
)

var errNoHTMLPart = errors.New("no text/html part")

var utf8BOM = []byte("\xef\xbb\xbf")

// extractMHTMLPart returns the decoded body of the first text/html part of
// an MHTML archive together with that part's Content-Type
func extractMHTMLPart(content []byte) ([]byte, string, error) {
	msg, err := mail.ReadMessage(bytes.NewReader(content))
	if err != nil {
		return nil, "", err
	}
	return findHTMLPart(msg.Body, textproto.MIMEHeader(msg.Header))
}

func findHTMLPart(body io.Reader, header textproto.MIMEHeader) ([]byte, string, error) {
	contentType := header.Get("Content-Type")
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, "", err
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		boundary := params["boundary"]
		if boundary == "" {
			return nil, "", errors.New("multipart message without boundary")
		}
		reader := multipart.NewReader(body, boundary)
		for {
			// raw parts keep Content-Transfer-Encoding for us to decode
			part, err := reader.NextRawPart()
			if err == io.EOF {
				return nil, "", errNoHTMLPart
			}
			if err != nil {
				return nil, "", err
			}
			if data, partType, err := findHTMLPart(part, part.Header); err == nil {
				return data, partType, nil
			}
		}
	}

	if mediaType != "text/html" {
		return nil, "", errNoHTMLPart
	}
	data, err := io.ReadAll(transferDecoder(body, header.Get("Content-Transfer-Encoding")))
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

func transferDecoder(r io.Reader, encoding string) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	default:
		return r
	}
}

// htmlReader returns a UTF-8 reader over an HTML document. A charset in
// contentType wins; valid UTF-8 is used as is; otherwise the encoding comes
// from the document's meta tags with windows-1252 as the fallback.
func htmlReader(data []byte, contentType string) (io.Reader, error) {
	if _, params, err := mime.ParseMediaType(contentType); err == nil && params["charset"] != "" {
		return charsetReader(data, contentType)
	}
	if utf8.Valid(data) {
		return bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)), nil
	}
	return charsetReader(data, contentType)
}

func charsetReader(data []byte, contentType string) (io.Reader, error) {
	r, err := charset.NewReader(bytes.NewReader(data), contentType)
	if err != nil {
		return nil, utils.NewConversionError("failed to decode HTML charset", err)
	}
	return r, nil
}
