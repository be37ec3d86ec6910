package analyzer

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/osa030/playtime/internal/domain/locale"
)

// Query parameter names.
const (
	ParamID     = "id"
	ParamURL    = "url"
	ParamLocale = "l"
)

// Request is a validated analysis request.
type Request struct {
	PlaylistID string
	Locale     locale.Locale
}

// Validator turns raw query parameters into a Request.
type Validator struct {
	locales   *locale.Set
	listParam string
}

// NewValidator creates a validator. listParam is the playlist URL query
// parameter holding the playlist id ("list" on youtube.com).
func NewValidator(locales *locale.Set, listParam string) *Validator {
	return &Validator{locales: locales, listParam: listParam}
}

// Validate extracts the playlist id from "id" or "url" and resolves "l".
// When both are given the id found in the URL wins.
func (v *Validator) Validate(params url.Values) (Request, error) {
	id := strings.TrimSpace(params.Get(ParamID))
	rawURL := strings.TrimSpace(params.Get(ParamURL))

	if id == "" && rawURL == "" {
		return Request{}, &ValidationError{
			Reason:  ReasonMissingParameter,
			Message: fmt.Sprintf("Missing required query parameter: either '%s' or '%s' must be provided.", ParamID, ParamURL),
		}
	}

	if rawURL != "" {
		u, err := url.Parse(rawURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Request{}, &ValidationError{
				Reason:  ReasonInvalidURL,
				Message: "Invalid URL format provided.",
			}
		}

		id = strings.TrimSpace(u.Query().Get(v.listParam))
		if id == "" {
			return Request{}, &ValidationError{
				Reason:  ReasonMissingListID,
				Message: "URL does not contain a valid playlist ID.",
			}
		}
	}

	return Request{
		PlaylistID: id,
		Locale:     v.locales.Resolve(params.Get(ParamLocale)),
	}, nil
}
