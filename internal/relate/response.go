package relate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matsen/mindmap/internal/llm"
)

// ErrMalformedResponse indicates the model reply did not match the
// expected relationships schema.
var ErrMalformedResponse = errors.New("malformed relationships response")

var validate = validator.New()

// Response is the structured reply expected from the model.
type Response struct {
	Relationships []Relationship `json:"relationships" validate:"required,dive"`
}

// Relationship lists the concepts judged related to one concept.
type Relationship struct {
	ConceptID  *int  `json:"concept_id" validate:"required"`
	RelatedIDs []int `json:"related_ids"`
}

// ParseResponse decodes the first fenced block of the reply, or the whole
// reply when it has none. A response is accepted or rejected as a whole.
func ParseResponse(text string) (Response, error) {
	body := llm.FencedBlock(text)
	if body == "" {
		return Response{}, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	var resp Response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := validate.Struct(&resp); err != nil {
		return Response{}, fmt.Errorf("%w: %s", ErrMalformedResponse, validationMessage(err))
	}
	return resp, nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", strings.TrimPrefix(fe.Namespace(), "Response."), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
