package readme

import (
	"reflect"
	"testing"

	"github.com/spf13/afero"
)

func TestFirstParagraphSkipsHeadingsAndBadges(t *testing.T) {
	src := []byte(`# mylib

[![CI](https://ci.example/badge.svg)](https://ci.example) ![license](https://img/l.svg)

<p align="center">logo</p>

A tiny library for parsing things.
Works with **streams** too.

## Install
`)

	got := FirstParagraph(src, 8)
	want := []string{"A tiny library for parsing things.", "Works with **streams** too."}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}

func TestFirstParagraphHonoursMaxLines(t *testing.T) {
	src := []byte("line one\nline two\nline three\n")
	got := FirstParagraph(src, 2)
	if len(got) != 2 || got[1] != "line two" {
		t.Fatalf("expected two lines, got %#v", got)
	}
}

func TestDescribeFindsCandidate(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/p/README", []byte("Plain text readme.\n"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got := Describe(fs, "/p", Options{})
	if len(got) != 1 || got[0] != "Plain text readme." {
		t.Fatalf("unexpected description: %#v", got)
	}
}

func TestDescribeMissingReadme(t *testing.T) {
	fs := afero.NewMemMapFs()
	if got := Describe(fs, "/nothing", Options{MaxLines: 3}); got != nil {
		t.Fatalf("expected nil description, got %#v", got)
	}
}
