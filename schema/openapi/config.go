package openapi

import "strings"

type documentConfig struct {
	openAPIVersion string
	info           documentInfo
	pathPrefix     string
	contentType    string
	responses      map[string]string
}

type documentInfo struct {
	Title       string
	Version     string
	Description string
}

func defaultDocumentConfig() documentConfig {
	return documentConfig{
		openAPIVersion: "3.0.3",
		info: documentInfo{
			Title:   "Forms",
			Version: "1.0.0",
		},
		pathPrefix:  "/forms",
		contentType: "application/x-www-form-urlencoded",
		responses: map[string]string{
			"204": "Accepted",
			"422": "Validation failed",
		},
	}
}

// Option configures Document.
type Option func(*documentConfig)

// WithOpenAPIVersion overrides the OpenAPI version string (default: 3.0.3).
func WithOpenAPIVersion(version string) Option {
	return func(cfg *documentConfig) {
		if version == "" {
			return
		}
		cfg.openAPIVersion = version
	}
}

// InfoOption configures optional fields on the info section.
type InfoOption func(*documentInfo)

// WithInfoDescription sets the info description.
func WithInfoDescription(description string) InfoOption {
	return func(info *documentInfo) {
		info.Description = description
	}
}

// WithInfo configures the info block. Empty strings keep the defaults.
func WithInfo(title, version string, opts ...InfoOption) Option {
	return func(cfg *documentConfig) {
		if title != "" {
			cfg.info.Title = title
		}
		if version != "" {
			cfg.info.Version = version
		}
		for _, opt := range opts {
			if opt != nil {
				opt(&cfg.info)
			}
		}
	}
}

// WithPathPrefix sets the prefix each form's submit path is mounted under.
func WithPathPrefix(prefix string) Option {
	return func(cfg *documentConfig) {
		cfg.pathPrefix = "/" + strings.Trim(prefix, "/")
	}
}

// WithContentType sets the request body content type.
func WithContentType(contentType string) Option {
	return func(cfg *documentConfig) {
		if contentType == "" {
			return
		}
		cfg.contentType = contentType
	}
}

// WithResponse registers or overrides the response for status.
func WithResponse(status, description string) Option {
	return func(cfg *documentConfig) {
		if status == "" {
			return
		}
		if cfg.responses == nil {
			cfg.responses = map[string]string{}
		}
		cfg.responses[status] = description
	}
}
