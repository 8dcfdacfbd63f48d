package generation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/listing-studio/internal/domain"
)

// JSON property names of the structured listing copy response.
const (
	FieldTitle       = "title"
	FieldBullets     = "bullets"
	FieldDescription = "description"
)

// RequiredCopyFields lists the properties every copy response must carry.
var RequiredCopyFields = []string{FieldTitle, FieldBullets, FieldDescription}

// CopySchema represents the expected structure of a listing copy response.
// Bullets is required to be present (non-null); its length is not enforced.
type CopySchema struct {
	// Title is the SEO optimised product title
	Title string `json:"title" validate:"required"`

	// Bullets are the ordered benefit statements
	Bullets []string `json:"bullets" validate:"required"`

	// Description is the long-form product description
	Description string `json:"description" validate:"required"`
}

var copyValidator = validator.New(validator.WithRequiredStructEnabled())

// DecodeListingCopy parses and validates a structured copy response. It never
// returns a partially populated result: any JSON error or missing field is
// reported as ErrInvalidResponse.
func DecodeListingCopy(raw []byte) (domain.ListingCopy, error) {
	trimmed := bytes.TrimSpace(stripCodeFence(raw))
	if len(trimmed) == 0 {
		return domain.ListingCopy{}, fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}

	var schema CopySchema
	if err := json.Unmarshal(trimmed, &schema); err != nil {
		return domain.ListingCopy{}, fmt.Errorf("%w: failed to parse JSON response: %v", ErrInvalidResponse, err)
	}

	if err := copyValidator.Struct(schema); err != nil {
		return domain.ListingCopy{}, fmt.Errorf("%w: %s", ErrInvalidResponse, describeValidation(err))
	}

	return domain.ListingCopy{
		Title:       schema.Title,
		Bullets:     schema.Bullets,
		Description: schema.Description,
	}, nil
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	missing := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	return "missing required field(s): " + strings.Join(missing, ", ")
}

// stripCodeFence removes a surrounding ```json fence some models add even in
// JSON mode.
func stripCodeFence(raw []byte) []byte {
	s := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(s, []byte("```")) {
		return s
	}
	s = bytes.TrimPrefix(s, []byte("```"))
	if nl := bytes.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	return bytes.TrimSuffix(bytes.TrimSpace(s), []byte("```"))
}
