package safe_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskcalc/pkg/utils/safe"
)

type failingCloser struct{ called bool }

func (c *failingCloser) Close() error {
	c.called = true
	return errors.New("boom")
}

func TestClose(t *testing.T) {
	c := &failingCloser{}
	safe.Close(context.Background(), c)
	gt.B(t, c.called).True()

	// nil closer is a no-op
	safe.Close(context.Background(), nil)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	safe.Write(context.Background(), &buf, []byte("risk"))
	gt.Value(t, buf.String()).Equal("risk")

	safe.Write(context.Background(), nil, []byte("ignored"))
}
