package cmd

import (
	cerrors "github.com/salmonumbrella/computefake/internal/errors"
	"github.com/salmonumbrella/computefake/internal/fakes"
	"github.com/salmonumbrella/computefake/internal/transport"
)

// mapCommandError adds common suggestions for known error types.
func mapCommandError(err error) error {
	if err == nil {
		return nil
	}
	if cerrors.ContainsSuggestion(err) {
		return err
	}

	if key, ok := fakes.ExpectedKey(err); ok {
		return Suggest(err, cerrors.SuggestRegisterHandler(key))
	}
	switch {
	case fakes.IsPrecondition(err):
		return Suggest(err, cerrors.SuggestionCheckBody)
	case transport.IsNotFound(err):
		return Suggest(err, cerrors.SuggestionListRoutes)
	}

	return err
}
