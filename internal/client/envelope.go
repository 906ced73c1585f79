package client

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bookhub/admin-client/internal/http"
	"github.com/bookhub/admin-client/pkg/bookhub"
)

// decodeEnvelope turns a transport result into an envelope. Remote failures
// reported through an error status are folded back into an envelope value so
// callers only see an error for transport problems.
func decodeEnvelope[T any](resp *http.Response, err error, action string) (*bookhub.Envelope[T], error) {
	var failure *bookhub.Failure
	if errors.As(err, &failure) && failure.Kind == bookhub.FailureRemote {
		return &bookhub.Envelope[T]{Code: failure.Code, Message: failure.Message}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	if len(resp.Body) == 0 {
		return nil, fmt.Errorf("%s: %w", action, bookhub.ErrEmptyEnvelope)
	}

	var envelope bookhub.Envelope[T]

	err = json.Unmarshal(resp.Body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", action, err)
	}

	if envelope.Code == "" {
		return nil, fmt.Errorf("%s: %w", action, bookhub.ErrNotEnvelope)
	}

	return &envelope, nil
}
