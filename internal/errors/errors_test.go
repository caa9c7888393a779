package errors_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-director/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "save slot not found",
			expected: "NOT_FOUND: save slot not found",
		},
		{
			name:     "failed precondition error",
			code:     errors.CodeFailedPrecondition,
			message:  "a turn is already in progress",
			expected: "FAILED_PRECONDITION: a turn is already in progress",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Assert().Equal(tc.expected, err.Error())
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorWithMeta() {
	err := errors.NotFound("save slot not found").
		WithMeta("slot_id", "autosave").
		WithMeta("backend", "redis")

	s.Assert().Equal("autosave", err.Meta["slot_id"])
	s.Assert().Equal("redis", err.Meta["backend"])
}

func (s *ErrorsTestSuite) TestWrap() {
	baseErr := fmt.Errorf("connection refused")
	wrapped := errors.Wrap(baseErr, "failed to store save slot")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal("failed to store save slot", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.DataLoss("save document is not valid JSON")
	wrapped := errors.Wrap(baseErr, "failed to load save slot")

	s.Assert().Equal(errors.CodeDataLoss, wrapped.Code)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := errors.Internal("boom").WithMeta("engine", "gemini")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeUnavailable, "model unavailable")

	s.Assert().Equal(errors.CodeUnavailable, wrapped.Code)
	s.Assert().Equal("gemini", wrapped.Meta["engine"])
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestConstructorFunctions() {
	testCases := []struct {
		name        string
		constructor func() *errors.Error
		code        errors.Code
	}{
		{"NotFound", func() *errors.Error { return errors.NotFound("test") }, errors.CodeNotFound},
		{"InvalidArgument", func() *errors.Error { return errors.InvalidArgument("test") }, errors.CodeInvalidArgument},
		{"FailedPrecondition", func() *errors.Error { return errors.FailedPrecondition("test") }, errors.CodeFailedPrecondition},
		{"Internal", func() *errors.Error { return errors.Internal("test") }, errors.CodeInternal},
		{"Unavailable", func() *errors.Error { return errors.Unavailable("test") }, errors.CodeUnavailable},
		{"DataLoss", func() *errors.Error { return errors.DataLoss("test") }, errors.CodeDataLoss},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.constructor()
			s.Assert().Equal(tc.code, err.Code)
			s.Assert().Equal("test", err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestErrorIs() {
	s.Assert().True(errors.Is(errors.Wrap(errors.NotFound("a"), "b"), errors.NotFound("c")))
	s.Assert().False(errors.NotFound("a").Is(errors.InvalidArgument("a")))
}

func (s *ErrorsTestSuite) TestGetCode() {
	wrapped := errors.Wrap(errors.FailedPrecondition("busy"), "wrapped")

	s.Assert().Equal(errors.CodeFailedPrecondition, errors.GetCode(wrapped))
	s.Assert().True(errors.IsFailedPrecondition(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("user friendly message")
	wrapped := errors.Wrap(err, "wrapped message")

	s.Assert().Equal("user friendly message", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestHTTPStatus() {
	testCases := []struct {
		code     errors.Code
		expected int
	}{
		{errors.CodeOK, http.StatusOK},
		{errors.CodeNotFound, http.StatusNotFound},
		{errors.CodeInvalidArgument, http.StatusBadRequest},
		{errors.CodeFailedPrecondition, http.StatusConflict},
		{errors.CodeDataLoss, http.StatusUnprocessableEntity},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.CodeUnavailable, http.StatusServiceUnavailable},
		{errors.CodeDeadlineExceeded, http.StatusGatewayTimeout},
		{errors.Code("TEAPOT"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.HTTPStatus())
		})
	}
}

func (s *ErrorsTestSuite) TestWrapCopiesMeta() {
	base := errors.NotFound("save slot not found").WithMeta("slot_id", "autosave")
	wrapped := errors.Wrap(base, "failed to load").WithMeta("backend", "sqlite")

	s.Assert().Equal("autosave", wrapped.Meta["slot_id"])
	s.Assert().NotContains(base.Meta, "backend")
}

func (s *ErrorsTestSuite) TestUpstream() {
	testCases := []struct {
		name string
		err  error
		want errors.Code
	}{
		{"deadline", fmt.Errorf("post: %w", context.DeadlineExceeded), errors.CodeDeadlineExceeded},
		{"canceled", context.Canceled, errors.CodeCanceled},
		{"coded cause keeps code", errors.NotFound("model not found"), errors.CodeNotFound},
		{"foreign error", fmt.Errorf("connection refused"), errors.CodeUnavailable},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.Upstream(tc.err, "ollama chat failed")
			s.Assert().Equal(tc.want, err.Code)
			s.Assert().Equal("ollama chat failed", err.Message)
			s.Assert().ErrorIs(err, tc.err)
		})
	}

	s.Assert().Nil(errors.Upstream(nil, "nothing"))
}

func (s *ErrorsTestSuite) TestRetryable() {
	s.Assert().True(errors.IsRetryable(errors.Upstream(fmt.Errorf("refused"), "redis down")))
	s.Assert().True(errors.IsRetryable(errors.Upstream(context.DeadlineExceeded, "slow")))
	s.Assert().False(errors.IsRetryable(errors.DataLoss("corrupt")))
	s.Assert().False(errors.IsRetryable(nil))
	s.Assert().True(errors.IsUnavailable(errors.Unavailable("engine down")))
}
