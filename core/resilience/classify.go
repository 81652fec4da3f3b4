package resilience

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"regexp"
	"strings"
	"syscall"
)

// Service names with a registered classification rule.
const (
	ServiceObjectStorage = "object-storage"
	ServiceIdentity      = "identity"
	ServiceSearch        = "search"
	ServiceWideColumn    = "wide-column"
)

// Classifier reports whether a failed attempt may be retried.
type Classifier func(err error) bool

// retryable is implemented by errors that know their own retry eligibility.
type retryable interface {
	Retryable() bool
}

var (
	fiveXX       = regexp.MustCompile(`\b5\d\d\b`)
	clientDenied = regexp.MustCompile(`\b40[134]\b`)
)

func defaultClassifiers() map[string]Classifier {
	return map[string]Classifier{
		ServiceObjectStorage: ObjectStorageClassifier,
		ServiceIdentity:      IdentityClassifier,
		ServiceSearch:        SearchClassifier,
		ServiceWideColumn:    WideColumnClassifier,
	}
}

// IsRetryable decides retry eligibility for err raised by service.
// Typed errors decide for themselves; otherwise the service's message rules apply.
func (e *Executor) IsRetryable(service string, err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var r retryable
	if errors.As(err, &r) {
		return r.Retryable()
	}
	if Transient(err) {
		return true
	}

	e.mu.Lock()
	classify, ok := e.classifiers[service]
	e.mu.Unlock()
	if !ok {
		classify = DefaultClassifier
	}
	return classify(err)
}

// Transient reports typed transport failures: deadlines, network timeouts, resets,
// refused connections, broken pipes and truncated reads.
func Transient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// ObjectStorageClassifier retries throttling, slowdown, timeouts and 5xx; never 404/403/401.
func ObjectStorageClassifier(err error) bool {
	if Transient(err) {
		return true
	}
	msg := message(err)
	if clientDenied.MatchString(msg) || containsAny(msg, "nosuchkey", "nosuchbucket", "accessdenied", "access denied", "forbidden", "unauthorized") {
		return false
	}
	return containsAny(msg, "throttl", "slowdown", "slow down", "timeout", "timed out") ||
		fiveXX.MatchString(msg) || isNetworkMessage(msg)
}

// IdentityClassifier retries throttling, unavailability, internal errors and timeouts;
// never missing users, bad passwords or invalid parameters.
func IdentityClassifier(err error) bool {
	msg := message(err)
	if containsAny(msg, "usernotfound", "user not found", "notauthorized", "incorrect username or password", "incorrect password", "invalidparameter", "invalid parameter") {
		return false
	}
	return containsAny(msg, "throttl", "toomanyrequests", "serviceunavailable", "service unavailable", "internalerror", "internal error", "timeout") ||
		isNetworkMessage(msg)
}

// SearchClassifier retries busy clusters, timeouts and 5xx.
func SearchClassifier(err error) bool {
	msg := message(err)
	return containsAny(msg, "cluster busy", "cluster_busy", "clusterbusy", "es_rejected_execution", "database is locked", "timeout") ||
		fiveXX.MatchString(msg) || isNetworkMessage(msg)
}

// WideColumnClassifier retries throttling, exceeded throughput, unavailability and internal server errors.
func WideColumnClassifier(err error) bool {
	msg := message(err)
	return containsAny(msg, "throttlingexception", "provisionedthroughputexceeded", "throughput exceeded", "serviceunavailable", "service unavailable", "internalservererror", "internal server error") ||
		isNetworkMessage(msg)
}

// DefaultClassifier retries 5xx and network/fetch failures; everything else fails fast.
func DefaultClassifier(err error) bool {
	msg := message(err)
	return fiveXX.MatchString(msg) || isNetworkMessage(msg)
}

func isNetworkMessage(msg string) bool {
	return containsAny(msg, "network", "fetch failed", "failed to fetch", "connection refused", "connection reset", "broken pipe", "no such host", "unexpected eof", "timeout")
}

// message is the lower-cased error text. Request URLs are dropped because object keys
// and query strings carry digits that read as status codes.
func message(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		err = ue.Err
	}
	return strings.ToLower(err.Error())
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
