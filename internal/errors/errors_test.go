package errors_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/pokedex-api/internal/errors"
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
			name:     "network error",
			code:     errors.CodeNetwork,
			message:  "GET /pokemon returned 500",
			expected: "NETWORK: GET /pokemon returned 500",
		},
		{
			name:     "malformed response error",
			code:     errors.CodeMalformedResponse,
			message:  "missing results",
			expected: "MALFORMED_RESPONSE: missing results",
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

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	baseErr := errors.Networkf("GET %s: connection refused", "https://pokeapi.co/api/v2/pokemon/1")
	wrapped := errors.Wrap(baseErr, "failed to get bulbasaur")

	s.Assert().Equal(errors.CodeNetwork, wrapped.Code)
	s.Assert().Equal("failed to get bulbasaur", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
	s.Assert().True(errors.IsNetwork(wrapped))
}

func (s *ErrorsTestSuite) TestWrapPlainError() {
	baseErr := fmt.Errorf("redis: connection pool timeout")
	wrapped := errors.Wrap(baseErr, "failed to store session")

	s.Assert().Equal(errors.CodeInternal, wrapped.Code)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapWithCode() {
	baseErr := fmt.Errorf("unexpected end of JSON input")
	wrapped := errors.WrapWithCode(baseErr, errors.CodeMalformedResponse, "failed to decode roster")

	s.Assert().Equal(errors.CodeMalformedResponse, wrapped.Code)
	s.Assert().Equal("failed to decode roster", wrapped.Message)
	s.Assert().Equal(baseErr, wrapped.Unwrap())
}

func (s *ErrorsTestSuite) TestWrapNil() {
	s.Assert().Nil(errors.Wrap(nil, "should be nil"))
	s.Assert().Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestErrorIs() {
	err1 := errors.Network("a")
	err2 := errors.Network("b")
	err3 := errors.MalformedResponse("a")

	s.Assert().True(err1.Is(err2))
	s.Assert().False(err1.Is(err3))
	s.Assert().True(errors.Is(errors.Wrap(err1, "wrapped"), err2))
}

func (s *ErrorsTestSuite) TestGetCode() {
	err := errors.MalformedResponse("test")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal(errors.CodeMalformedResponse, errors.GetCode(err))
	s.Assert().Equal(errors.CodeMalformedResponse, errors.GetCode(wrapped))
	s.Assert().Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("standard error")))
	s.Assert().Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestGetMessage() {
	err := errors.NotFound("catalog session not found")
	wrapped := errors.Wrap(err, "wrapped message")

	s.Assert().Equal("catalog session not found", errors.GetMessage(err))
	s.Assert().Equal("wrapped message", errors.GetMessage(wrapped))
	s.Assert().Equal("standard error", errors.GetMessage(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestGetMeta() {
	err := errors.Network("test").WithMeta("url", "https://pokeapi.co/api/v2/pokemon/4/")
	wrapped := errors.Wrap(err, "wrapped")

	s.Assert().Equal("https://pokeapi.co/api/v2/pokemon/4/", errors.GetMeta(wrapped)["url"])
	s.Assert().Nil(errors.GetMeta(fmt.Errorf("standard error")))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeNetwork, codes.Unavailable},
		{errors.CodeMalformedResponse, codes.DataLoss},
		{errors.CodeInternal, codes.Internal},
	}

	for _, tc := range testCases {
		s.Run(string(tc.code), func() {
			s.Assert().Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}

func (s *ErrorsTestSuite) TestGRPCConversion() {
	grpcErr := errors.ToGRPCError(errors.NotFound("catalog session not found"))
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Assert().Equal(codes.NotFound, st.Code())
	s.Assert().Equal("catalog session not found", st.Message())

	err := errors.FromGRPCError(status.Error(codes.InvalidArgument, "session_id is required"))
	s.Assert().True(errors.IsInvalidArgument(err))
	s.Assert().Equal("session_id is required", errors.GetMessage(err))

	st, _ = status.FromError(errors.ToGRPCError(context.DeadlineExceeded))
	s.Assert().Equal(codes.DeadlineExceeded, st.Code())

	s.Assert().Nil(errors.ToGRPCError(nil))
}
