package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/lonng/onyou/protocol"
	"github.com/pkg/errors"
)

const (
	partFile        = "file"
	partFeedRequest = "feedCreateRequest"
)

// Upload is one image of a feed post
type Upload struct {
	Name        string
	ContentType string
	Body        io.Reader
}

func (s *Session) Feeds(ctx context.Context) ([]protocol.Feed, error) {
	req, err := s.request(ctx, http.MethodGet, pathFeeds, nil, nil)
	if err != nil {
		return nil, err
	}

	resp := &protocol.FeedsResponse{}
	if err := s.call(req, resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateFeed posts images and text as multipart form: one file part per
// image and a JSON feedCreateRequest part
func (s *Session) CreateFeed(ctx context.Context, feed protocol.FeedCreation, uploads []Upload) error {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for _, u := range uploads {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, partFile, escapeQuotes(u.Name)))
		h.Set("Content-Type", u.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return errors.WithStack(err)
		}
		if _, err := io.Copy(part, u.Body); err != nil {
			return errors.Wrapf(err, "client: read upload %s", u.Name)
		}
	}

	data, err := json.Marshal(feed)
	if err != nil {
		return errors.WithStack(err)
	}
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"`, partFeedRequest))
	h.Set("Content-Type", "application/json")
	part, err := w.CreatePart(h)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err := part.Write(data); err != nil {
		return errors.WithStack(err)
	}
	if err := w.Close(); err != nil {
		return errors.WithStack(err)
	}

	req, err := s.request(ctx, http.MethodPost, pathFeeds, nil, nil)
	if err != nil {
		return err
	}
	req.Body = io.NopCloser(bytes.NewReader(body.Bytes()))
	req.ContentLength = int64(body.Len())
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body.Bytes())), nil
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return s.call(req, nil)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
