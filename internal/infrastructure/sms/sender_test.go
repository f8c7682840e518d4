package sms

import (
	"context"
	"testing"
)

func TestMaskPhone(t *testing.T) {
	cases := map[string]string{
		"+380501234567": "*********4567",
		"123":           "***",
		"":              "",
	}
	for in, want := range cases {
		if got := MaskPhone(in); got != want {
			t.Fatalf("MaskPhone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLogSender_NilLogger(t *testing.T) {
	if err := NewLogSender(nil).Send(context.Background(), "+380501234567", "code 123456"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}
