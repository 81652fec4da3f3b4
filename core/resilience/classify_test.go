package resilience

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestIsRetryable(t *testing.T) {
	exec := New(zap.NewNop())

	tests := []struct {
		name    string
		service string
		err     error
		want    bool
	}{
		{"S3 SlowDown", ServiceObjectStorage, errors.New("SlowDown: please reduce your request rate"), true},
		{"S3 Throttling", ServiceObjectStorage, errors.New("Throttling"), true},
		{"S3 Timeout", ServiceObjectStorage, errors.New("request timeout"), true},
		{"S3 500", ServiceObjectStorage, errors.New("status 500"), true},
		{"S3 404", ServiceObjectStorage, errors.New("status 404"), false},
		{"S3 401", ServiceObjectStorage, errors.New("401 unauthorized"), false},
		{"S3 Other", ServiceObjectStorage, errors.New("invalid argument"), false},
		{"S3 Reset On Digit Key", ServiceObjectStorage, fmt.Errorf("stat entity/yu_gi_oh/40410110-ab.json: %w", syscall.ECONNRESET), true},
		{"S3 Digits Are Not A Status", ServiceObjectStorage, errors.New("connection reset on 40410110"), true},
		{"S3 Truncated Read", ServiceObjectStorage, fmt.Errorf("read: %w", io.ErrUnexpectedEOF), true},
		{"S3 URL Offset Is Not 5xx", ServiceObjectStorage, &url.Error{
			Op:  "Get",
			URL: "http://minio:9000/card-cache/cards/search/magic/bolt-0a1b/20-500.json",
			Err: errors.New("access denied"),
		}, false},

		{"Identity Throttle", ServiceIdentity, errors.New("TooManyRequestsException: throttled"), true},
		{"Identity Unavailable", ServiceIdentity, errors.New("ServiceUnavailable"), true},
		{"Identity Internal", ServiceIdentity, errors.New("InternalErrorException"), true},
		{"Identity Bad Password", ServiceIdentity, errors.New("NotAuthorizedException: Incorrect username or password"), false},
		{"Identity Invalid Param", ServiceIdentity, errors.New("InvalidParameterException"), false},

		{"Search Busy", ServiceSearch, errors.New("cluster busy"), true},
		{"Search 502", ServiceSearch, errors.New("502 bad gateway"), true},
		{"Search Syntax", ServiceSearch, errors.New("syntax error near LIKE"), false},

		{"Wide Throttling", ServiceWideColumn, errors.New("ThrottlingException"), true},
		{"Wide Throughput", ServiceWideColumn, errors.New("ProvisionedThroughputExceededException"), true},
		{"Wide Internal", ServiceWideColumn, errors.New("InternalServerError"), true},
		{"Wide Validation", ServiceWideColumn, errors.New("ValidationException"), false},

		{"Default 503", "unknown", errors.New("upstream status 503"), true},
		{"Default Network", "unknown", errors.New("dial tcp: connection refused"), true},
		{"Default Fetch", "unknown", errors.New("fetch failed"), true},
		{"Default 400", "unknown", errors.New("upstream status 400"), false},
		{"Port Number Is Not 5xx", "unknown", errors.New("bad request to host:5000x"), false},

		{"Typed Wins", ServiceObjectStorage, fmt.Errorf("wrapped: %w", &flagged{msg: "404", retryable: true}), true},
		{"Cancelled", "unknown", context.Canceled, false},
		{"Deadline", "unknown", fmt.Errorf("get: %w", context.DeadlineExceeded), true},
		{"Net Timeout", "unknown", timeoutErr{}, true},
		{"Nil", "unknown", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exec.IsRetryable(tt.service, tt.err))
		})
	}
}

func TestWithClassifier(t *testing.T) {
	exec := New(zap.NewNop(), WithClassifier("custom", func(err error) bool { return true }))
	assert.True(t, exec.IsRetryable("custom", errors.New("anything")))

	exec = New(zap.NewNop(), WithClassifier(ServiceObjectStorage, func(err error) bool { return false }))
	assert.False(t, exec.IsRetryable(ServiceObjectStorage, errors.New("503 slowdown")))
}
