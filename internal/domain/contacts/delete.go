package contacts

import (
	"context"
	"fmt"
)

// DeletionRequest names the contact to remove, e.g. "people/c123".
type DeletionRequest struct {
	ResourceName string
}

// DeletionResult is the success payload of Delete.
type DeletionResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	ResourceName string `json:"-"`
}

// Delete removes the contact with exactly one deleteContact call.
// The identifier format is left to the API to validate; only an empty one is rejected locally.
// A second delete of the same contact fails with KindNotFound.
func (s *Service) Delete(ctx context.Context, req DeletionRequest) (*DeletionResult, error) {
	if req.ResourceName == "" {
		err := NormalizeError(ErrEmptyResourceName)
		s.publish(ctx, TopicContactDeleted, "", err)
		return nil, err
	}

	if err := s.api.DeleteContact(ctx, req.ResourceName); err != nil {
		apiErr := NormalizeError(err)
		s.publish(ctx, TopicContactDeleted, req.ResourceName, apiErr)
		return nil, apiErr
	}

	s.publish(ctx, TopicContactDeleted, req.ResourceName, nil)
	return &DeletionResult{
		Success:      true,
		Message:      fmt.Sprintf("Contact %s deleted successfully", req.ResourceName),
		ResourceName: req.ResourceName,
	}, nil
}
