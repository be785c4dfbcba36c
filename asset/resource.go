package asset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Timeout for fetching remote resources.
const fetchTimeout = 30 * time.Second

var httpClient = &http.Client{Timeout: fetchTimeout}

// The Resource type wraps a streamable local file or remote (http/https)
// resource such as a scene map file.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Get the file extension of the resource path in lower case.
func (r *Resource) Ext() string {
	return strings.ToLower(filepath.Ext(r.url.Path))
}

// Open a resource. See NewResourceWithContext.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	return NewResourceWithContext(context.Background(), pathToResource, relTo)
}

// Open a local file or http/https resource. If relTo is specified and
// pathToResource does not define a scheme, the path is resolved against the
// directory of relTo.
//
// The caller must close the returned Resource.
func NewResourceWithContext(ctx context.Context, pathToResource string, relTo *Resource) (*Resource, error) {
	// Replace backslashes with forward slashes and try parsing as a URL
	resURL, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	// Windows drive letters parse as a single letter scheme
	if len(resURL.Scheme) == 1 {
		resURL = &url.URL{Path: pathToResource}
	}

	if resURL.Scheme == "" && relTo != nil && !filepath.IsAbs(resURL.Path) {
		resURL, err = resolveRelative(resURL.Path, relTo)
		if err != nil {
			return nil, err
		}
	}

	var reader io.ReadCloser
	switch resURL.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(resURL.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		reader, err = fetch(ctx, resURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", resURL.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        resURL,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	resURL, err := url.Parse(name)
	if err != nil {
		resURL = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        resURL,
	}
}

func resolveRelative(path string, relTo *Resource) (*url.URL, error) {
	parent := *relTo.url
	if parent.Scheme != "" {
		parent.Path = filepath.ToSlash(filepath.Dir(parent.Path)) + "/" + path
		return &parent, nil
	}

	prefix, err := filepath.Abs(parent.Path)
	if err != nil {
		return nil, fmt.Errorf("resource: could not detect abs path for %s; %s", parent.String(), err.Error())
	}
	return &url.URL{Path: filepath.Join(filepath.Dir(prefix), path)}, nil
}

func fetch(ctx context.Context, resURL *url.URL) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resURL.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("resource: could not fetch '%s': %s", resURL.String(), err)
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("resource: could not fetch '%s': status %d", resURL.String(), resp.StatusCode)
	}
	return resp.Body, nil
}
