package e2e_test

import (
	"os/exec"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("Countdown E2E Tests", func() {
	Describe("Counting down", func() {
		It("should print one line per second followed by done", func() {
			session, _ := startCountdown("--seconds", "3")

			Eventually(session, 10*time.Second).Should(gexec.Exit(0))
			Expect(string(session.Out.Contents())).To(Equal("3s  \n2s  \n1s  \ndone\n"))
		})

		It("should add hours, minutes and seconds", func() {
			session, _ := startCountdown("-H", "1", "-m", "2", "-s", "3")

			Eventually(session.Out).Should(gbytes.Say(`1h 2m 3s  \n`))
			session.Interrupt()
			Eventually(session, 5*time.Second).Should(gexec.Exit(130))
			Expect(session.Out).NotTo(gbytes.Say("done"))
		})

		It("should overwrite the same line in line mode", func() {
			session, _ := startCountdown("-l", "-s", "2")

			Eventually(session, 10*time.Second).Should(gexec.Exit(0))
			Expect(string(session.Out.Contents())).To(Equal("\r2s   \r1s   \rdone\n"))
		})

		It("should finish immediately for a zero duration", func() {
			session, _ := startCountdown()

			Eventually(session, 2*time.Second).Should(gexec.Exit(0))
			Expect(string(session.Out.Contents())).To(Equal("done\n"))
		})

		It("should keep counting when stdin is closed", func() {
			cmd := exec.Command(countdownBinary, "-s", "1")
			cmd.Stdin = strings.NewReader("")

			session, err := gexec.Start(cmd, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session, 5*time.Second).Should(gexec.Exit(0))
			Expect(string(session.Out.Contents())).To(Equal("1s  \ndone\n"))
		})
	})

	Describe("Pausing", func() {
		It("should not consume countdown time while paused", func() {
			session, send := startCountdown("-s", "5")

			Eventually(session.Out).Should(gbytes.Say(`5s  \n`))
			send("\n")

			Consistently(session.Out, 2*time.Second).ShouldNot(gbytes.Say("4s"))

			send("\n")
			Eventually(session, 10*time.Second).Should(gexec.Exit(0))
			Expect(string(session.Out.Contents())).To(Equal("5s  \n4s  \n3s  \n2s  \n1s  \ndone\n"))
		})

		It("should ignore anything but an empty line", func() {
			session, send := startCountdown("-s", "2")

			Eventually(session.Out).Should(gbytes.Say(`2s  \n`))
			send("pause\n")
			send(" \n")

			Eventually(session, 5*time.Second).Should(gexec.Exit(0))
			Expect(string(session.Out.Contents())).To(Equal("2s  \n1s  \ndone\n"))
		})
	})

	Describe("Failures", func() {
		It("should exit non-zero on an invalid flag value", func() {
			session, _ := startCountdown("--hours", "soon")

			Eventually(session, 5*time.Second).Should(gexec.Exit(1))
		})

		It("should exit non-zero on a duration that does not fit", func() {
			session, _ := startCountdown("--hours", "18446744073709551615")

			Eventually(session, 5*time.Second).Should(gexec.Exit(1))
			Expect(session.Err).To(gbytes.Say("duration too long"))
		})

		It("should reject an unknown log level", func() {
			session, _ := startCountdown("--log-level", "chatty", "-s", "1")

			Eventually(session, 5*time.Second).Should(gexec.Exit(1))
			Expect(session.Err).To(gbytes.Say("invalid log level"))
			Expect(string(session.Out.Contents())).NotTo(ContainSubstring("done"))
		})
	})

	Describe("Diagnostics", func() {
		It("should keep logs off stdout", func() {
			session, _ := startCountdown("--log-level", "debug", "-s", "1")

			Eventually(session, 5*time.Second).Should(gexec.Exit(0))
			Expect(string(session.Out.Contents())).To(Equal("1s  \ndone\n"))
			Expect(session.Err).To(gbytes.Say("run_id="))
			Expect(session.Err).To(gbytes.Say("countdown_ticks_total"))
		})
	})
})
