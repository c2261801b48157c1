package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/matiasleandrokruk/peoplebridge/internal/domain/contacts"
)

var ErrBuiltinExecutionFailed = errors.New("builtin tool execution failed")

// contactExecutor decodes params into P, runs call and encodes its result.
// Remote failures are returned as the *contacts.APIError from the service.
type contactExecutor[P, R any] struct {
	svc  *contacts.Service
	call func(ctx context.Context, svc *contacts.Service, in P) (R, error)
}

func (e *contactExecutor[P, R]) Execute(ctx context.Context, params json.RawMessage) (json.RawMessage, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: contacts service not configured", ErrBuiltinExecutionFailed)
	}

	var in P
	if err := json.Unmarshal(params, &in); err != nil {
		return nil, fmt.Errorf("%w: invalid params: %v", ErrToolValidationFailed, err)
	}

	res, err := e.call(ctx, e.svc, in)
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("%w: encode result: %v", ErrBuiltinExecutionFailed, err)
	}
	return out, nil
}

func NewListContactsExecutor(svc *contacts.Service) ToolExecutor {
	return &contactExecutor[ListContactsParams, *contacts.ListResult]{
		svc: svc,
		call: func(ctx context.Context, svc *contacts.Service, in ListContactsParams) (*contacts.ListResult, error) {
			return svc.List(ctx, in.Request())
		},
	}
}

func NewGetContactExecutor(svc *contacts.Service) ToolExecutor {
	return &contactExecutor[GetContactParams, *contacts.Contact]{
		svc: svc,
		call: func(ctx context.Context, svc *contacts.Service, in GetContactParams) (*contacts.Contact, error) {
			return svc.Get(ctx, in.Request())
		},
	}
}

func NewCreateContactExecutor(svc *contacts.Service) ToolExecutor {
	return &contactExecutor[CreateContactParams, *contacts.MutationResult]{
		svc: svc,
		call: func(ctx context.Context, svc *contacts.Service, in CreateContactParams) (*contacts.MutationResult, error) {
			return svc.Create(ctx, in.Request())
		},
	}
}

func NewUpdateContactExecutor(svc *contacts.Service) ToolExecutor {
	return &contactExecutor[UpdateContactParams, *contacts.MutationResult]{
		svc: svc,
		call: func(ctx context.Context, svc *contacts.Service, in UpdateContactParams) (*contacts.MutationResult, error) {
			return svc.Update(ctx, in.Request())
		},
	}
}

// NewDeleteContactExecutor returns {"success":true,"message":"Contact <id> deleted successfully"}.
func NewDeleteContactExecutor(svc *contacts.Service) ToolExecutor {
	return &contactExecutor[DeleteContactParams, *contacts.DeletionResult]{
		svc: svc,
		call: func(ctx context.Context, svc *contacts.Service, in DeleteContactParams) (*contacts.DeletionResult, error) {
			return svc.Delete(ctx, in.Request())
		},
	}
}
