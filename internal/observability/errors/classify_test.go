package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	apperrors "github.com/sisbib/sisbib-web/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Empty(t, Classify(nil))
	assert.Equal(t, "rejected", Classify(apperrors.Rejected("Ejemplar no disponible", 409)))
	assert.Equal(t, "unavailable", Classify(fmt.Errorf("list: %w", apperrors.Unavailable(errors.New("x")))))
	assert.Equal(t, "errors_errorstring", Classify(fmt.Errorf("wrap: %w", errors.New("plain"))))
	assert.Equal(t, "net_dnserror", Classify(&net.DNSError{Err: "no such host", Name: "backend"}))
	assert.Equal(t, "context_deadlineexceedederror", Classify(&net.OpError{Op: "dial", Err: context.DeadlineExceeded}))
}
