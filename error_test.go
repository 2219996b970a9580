package spiderkit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fwojciec/spiderkit"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", spiderkit.ErrorCode(nil))
	})

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := spiderkit.Errorf(spiderkit.ECONFIG, "bad parameter")
		assert.Equal(t, spiderkit.ECONFIG, spiderkit.ErrorCode(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("outer: %w", spiderkit.Errorf(spiderkit.EINVALIDURL, "bad url"))
		assert.Equal(t, spiderkit.EINVALIDURL, spiderkit.ErrorCode(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, spiderkit.EINTERNAL, spiderkit.ErrorCode(errors.New("boom")))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", spiderkit.ErrorMessage(nil))
	})

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := spiderkit.Errorf(spiderkit.EINVALIDREQUEST, "method %q not allowed", "")
		assert.Equal(t, `method "" not allowed`, spiderkit.ErrorMessage(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", spiderkit.ErrorMessage(errors.New("boom")))
	})
}
