package e2e_test

import (
	"os/exec"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gexec"
)

func TestE2E(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Countdown E2E Suite")
}

var countdownBinary string

var _ = BeforeSuite(func() {
	var err error
	countdownBinary, err = gexec.Build("github.com/draganm/countdown/cmd/countdown")
	Expect(err).NotTo(HaveOccurred())
})

var _ = AfterSuite(func() {
	gexec.CleanupBuildArtifacts()
})

// startCountdown runs the binary with args, keeping its stdin open for toggles
func startCountdown(args ...string) (*gexec.Session, func(string)) {
	cmd := exec.Command(countdownBinary, args...)
	stdin, err := cmd.StdinPipe()
	Expect(err).NotTo(HaveOccurred())

	session, err := gexec.Start(cmd, GinkgoWriter, GinkgoWriter)
	Expect(err).NotTo(HaveOccurred())

	DeferCleanup(func() {
		stdin.Close()
		session.Kill()
	})

	send := func(s string) {
		_, err := stdin.Write([]byte(s))
		Expect(err).NotTo(HaveOccurred())
	}
	return session, send
}
