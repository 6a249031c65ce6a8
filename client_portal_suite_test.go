package main_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestClientPortal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ClientPortal Suite")
}
