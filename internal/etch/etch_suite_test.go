package etch_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEtch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Etch Suite")
}
