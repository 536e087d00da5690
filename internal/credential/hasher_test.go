package credential

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cerrors "github.com/jsf0/credcrypt/internal/errors"

	"github.com/jsf0/credcrypt/internal/digest"
	"github.com/jsf0/credcrypt/internal/salt"
)

// scriptedReader answers prompts from a fixed list and keeps every slice it
// handed out so tests can check they were scrubbed.
type scriptedReader struct {
	answers []string
	prompts []string
	issued  [][]byte
}

func (s *scriptedReader) ReadSecret(p string) ([]byte, error) {
	s.prompts = append(s.prompts, p)
	if len(s.answers) == 0 {
		return nil, io.ErrUnexpectedEOF
	}
	b := []byte(s.answers[0])
	s.answers = s.answers[1:]
	s.issued = append(s.issued, b)
	return b, nil
}

func (s *scriptedReader) assertScrubbed(t *testing.T) {
	t.Helper()
	for i, b := range s.issued {
		assert.Equal(t, make([]byte, len(b)), b, "secret %d was not scrubbed", i)
	}
}

type recordingReporter struct {
	messages []string
}

func (r *recordingReporter) Error(msg string) {
	r.messages = append(r.messages, msg)
}

func TestCaptureHashAccepts(t *testing.T) {
	r := &scriptedReader{answers: []string{"hunter2", "hunter2"}}
	rep := &recordingReporter{}

	d, err := NewHasher(r, rep).CaptureHash()
	require.NoError(t, err)

	assert.Equal(t, digest.Sum([]byte("hunter2")), d)
	assert.Empty(t, rep.messages)
	assert.Equal(t, []string{PromptEnter, PromptConfirm}, r.prompts)
	r.assertScrubbed(t)
}

func TestCaptureHashRetriesOnMismatch(t *testing.T) {
	r := &scriptedReader{answers: []string{"hunter2", "hunter3", "hunter2", "hunter2"}}
	rep := &recordingReporter{}

	d, err := NewHasher(r, rep).CaptureHash()
	require.NoError(t, err)

	assert.Equal(t, digest.Sum([]byte("hunter2")), d)
	assert.Equal(t, []string{MsgMismatch}, rep.messages)
	assert.Len(t, r.prompts, 4)
	r.assertScrubbed(t)
}

func TestCaptureHashRetriesOnEmpty(t *testing.T) {
	r := &scriptedReader{answers: []string{"", "", "hunter2", "hunter2"}}
	rep := &recordingReporter{}

	d, err := NewHasher(r, rep).CaptureHash()
	require.NoError(t, err)

	assert.Equal(t, digest.Sum([]byte("hunter2")), d)
	assert.Equal(t, []string{MsgEmpty}, rep.messages)
	r.assertScrubbed(t)
}

func TestCaptureHashMismatchCheckedBeforeEmpty(t *testing.T) {
	r := &scriptedReader{answers: []string{"", "x", "a", "a"}}
	rep := &recordingReporter{}

	_, err := NewHasher(r, rep).CaptureHash()
	require.NoError(t, err)
	assert.Equal(t, []string{MsgMismatch}, rep.messages)
}

func TestCaptureHashManyRetries(t *testing.T) {
	var answers []string
	for i := 0; i < 50; i++ {
		answers = append(answers, "a", "b")
	}
	answers = append(answers, "ok", "ok")
	r := &scriptedReader{answers: answers}
	rep := &recordingReporter{}

	d, err := NewHasher(r, rep).CaptureHash()
	require.NoError(t, err)
	assert.Equal(t, digest.Sum([]byte("ok")), d)
	assert.Len(t, rep.messages, 50)
	r.assertScrubbed(t)
}

func TestCaptureHashPromptFailureAborts(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
	}{
		{"first prompt", nil},
		{"confirmation prompt", []string{"hunter2"}},
		{"after retry", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &scriptedReader{answers: tt.answers}
			rep := &recordingReporter{}

			_, err := NewHasher(r, rep).CaptureHash()
			assert.ErrorIs(t, err, cerrors.ErrPromptFailed)
			assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
			r.assertScrubbed(t)
		})
	}
}

func TestCaptureSaltedHash(t *testing.T) {
	r := &scriptedReader{answers: []string{"hunter2", "hunter3", "hunter2", "hunter2"}}
	rep := &recordingReporter{}

	d, s, err := NewHasher(r, rep).CaptureSaltedHash()
	require.NoError(t, err)

	want := digest.Sum(append([]byte("hunter2"), s.Bytes()...))
	assert.Equal(t, want, d)
	assert.Len(t, s.String(), salt.Size)
	assert.Equal(t, []string{MsgMismatch}, rep.messages)
	r.assertScrubbed(t)

	assert.True(t, Verify([]byte("hunter2"), s.Bytes(), d))
}

func TestCaptureSaltedHashPromptFailure(t *testing.T) {
	r := &scriptedReader{}

	_, _, err := NewHasher(r, &recordingReporter{}).CaptureSaltedHash()
	assert.ErrorIs(t, err, cerrors.ErrPromptFailed)
}

func TestCaptureVerify(t *testing.T) {
	s, err := salt.Generate()
	require.NoError(t, err)
	want := digest.Sum(append([]byte("hunter2"), s.Bytes()...))

	ok := &scriptedReader{answers: []string{"hunter2"}}
	require.NoError(t, NewHasher(ok, &recordingReporter{}).CaptureVerify(want, s.Bytes()))
	ok.assertScrubbed(t)

	bad := &scriptedReader{answers: []string{"hunter3"}}
	err = NewHasher(bad, &recordingReporter{}).CaptureVerify(want, s.Bytes())
	assert.True(t, errors.Is(err, cerrors.ErrVerifyFailed))

	closed := &scriptedReader{}
	err = NewHasher(closed, &recordingReporter{}).CaptureVerify(want, s.Bytes())
	assert.ErrorIs(t, err, cerrors.ErrPromptFailed)
}

func TestCaptureSaltedHashGeneratesSaltOnce(t *testing.T) {
	r := &scriptedReader{answers: []string{"hunter2", "hunter3", "", "", "hunter2", "hunter2"}}
	rep := &recordingReporter{}

	fixed, err := salt.Parse("abcdefghijklmnopqrst")
	require.NoError(t, err)

	calls := 0
	h := NewHasher(r, rep)
	h.newSalt = func() (salt.Salt, error) {
		calls++
		return fixed, nil
	}

	d, s, err := h.CaptureSaltedHash()
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, fixed, s)
	assert.Equal(t, digest.Sum([]byte("hunter2abcdefghijklmnopqrst")), d)
	assert.Equal(t, []string{MsgMismatch, MsgEmpty}, rep.messages)
	r.assertScrubbed(t)
}

func TestCaptureSaltedHashSaltFailure(t *testing.T) {
	r := &scriptedReader{answers: []string{"hunter2", "hunter2"}}

	h := NewHasher(r, &recordingReporter{})
	h.newSalt = func() (salt.Salt, error) {
		return salt.Salt{}, errors.New("entropy unavailable")
	}

	_, _, err := h.CaptureSaltedHash()
	assert.ErrorContains(t, err, "entropy unavailable")
	assert.Empty(t, r.prompts)
}
