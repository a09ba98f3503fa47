package exitcode_test

import (
	"errors"
	"testing"

	"taskboard/internal/exitcode"
	"taskboard/internal/store"
)

func TestForStoreError(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, exitcode.Success},
		{&store.RemoteError{StatusCode: 401}, exitcode.AuthError},
		{&store.RemoteError{StatusCode: 403}, exitcode.AuthError},
		{&store.RemoteError{StatusCode: 500}, exitcode.BackendError},
		{&store.RemoteError{Err: errors.New("dial tcp: refused")}, exitcode.BackendError},
	}
	for _, tc := range cases {
		if got := exitcode.ForStoreError(tc.err); got != tc.want {
			t.Errorf("ForStoreError(%v): expected %d, got %d", tc.err, tc.want, got)
		}
	}
}
