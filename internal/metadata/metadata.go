// Package metadata renders and checks the off-chain JSON documents that
// on-chain metadata URIs point at.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"golang.org/x/sync/errgroup"

	"cnft/internal/mpl"
)

const maxDocumentBytes = 1 << 20

var (
	ErrMissingName  = errors.New("metadata document has no name")
	ErrMissingImage = errors.New("metadata document has no image")
)

// Document follows the Metaplex token metadata JSON standard.
type Document struct {
	Name                 string      `json:"name"`
	Symbol               string      `json:"symbol,omitempty"`
	Description          string      `json:"description,omitempty"`
	Image                string      `json:"image"`
	ExternalURL          string      `json:"external_url,omitempty"`
	SellerFeeBasisPoints uint16      `json:"seller_fee_basis_points"`
	Attributes           []Attribute `json:"attributes,omitempty"`
	Properties           Properties  `json:"properties"`
}

type Attribute struct {
	TraitType string `json:"trait_type"`
	Value     string `json:"value"`
}

type Properties struct {
	Category string    `json:"category,omitempty"`
	Files    []File    `json:"files,omitempty"`
	Creators []Creator `json:"creators,omitempty"`
}

type File struct {
	URI  string `json:"uri"`
	Type string `json:"type,omitempty"`
}

type Creator struct {
	Address string `json:"address"`
	Share   uint8  `json:"share"`
}

// Input is what a rendered document is built from.
type Input struct {
	Name                 string
	Symbol               string
	Description          string
	Image                string
	ExternalURL          string
	SellerFeeBasisPoints uint16
	Creators             []mpl.Creator
	Attributes           []Attribute
}

// Render builds a document ready to be hosted at a metadata URI.
func Render(in Input) Document {
	doc := Document{
		Name:                 in.Name,
		Symbol:               in.Symbol,
		Description:          in.Description,
		Image:                in.Image,
		ExternalURL:          in.ExternalURL,
		SellerFeeBasisPoints: in.SellerFeeBasisPoints,
		Attributes:           in.Attributes,
		Properties:           Properties{Category: "image"},
	}
	if in.Image != "" {
		doc.Properties.Files = []File{{URI: in.Image, Type: imageType(in.Image)}}
	}
	for _, c := range in.Creators {
		doc.Properties.Creators = append(doc.Properties.Creators, Creator{Address: c.Address.String(), Share: c.Share})
	}
	return doc
}

// imageType guesses a MIME type from the URL path extension.
func imageType(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == "" {
		return ""
	}
	t := mime.TypeByExtension(ext)
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return t
}

// Validate checks the fields wallets and explorers require.
func (d Document) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(d.Image) == "" {
		return ErrMissingImage
	}
	return nil
}

// Fetch downloads and decodes the document at rawURL.
func Fetch(ctx context.Context, client *http.Client, rawURL string) (Document, error) {
	var doc Document
	if err := CheckURL(rawURL); err != nil {
		return doc, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return doc, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return doc, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return doc, fmt.Errorf("fetch %s: %s", rawURL, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return doc, err
	}
	if len(body) > maxDocumentBytes {
		return doc, fmt.Errorf("fetch %s: document larger than %d bytes", rawURL, maxDocumentBytes)
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return doc, fmt.Errorf("decode %s: %w", rawURL, err)
	}
	return doc, nil
}

// CheckURL requires an absolute http(s) URL.
func CheckURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("invalid url %q: need an absolute http(s) url", rawURL)
	}
	return nil
}

// Target is a hosted document and the name it is expected to carry.
type Target struct {
	Label string
	URL   string
	Name  string
}

// CheckResult is the outcome of checking one Target.
type CheckResult struct {
	Target
	Document Document
	Err      error
}

// CheckAll fetches every target concurrently and validates it. Per-target
// failures are reported in the results; the returned error is only set when
// ctx ends first.
func CheckAll(ctx context.Context, client *http.Client, targets []Target) ([]CheckResult, error) {
	results := make([]CheckResult, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			doc, err := Fetch(gctx, client, t.URL)
			if err == nil {
				err = doc.Validate()
			}
			if err == nil && t.Name != "" && doc.Name != t.Name {
				err = fmt.Errorf("name %q does not match expected %q", doc.Name, t.Name)
			}
			results[i] = CheckResult{Target: t, Document: doc, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
