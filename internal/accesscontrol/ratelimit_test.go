package accesscontrol

import (
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("FixedWindowLimiter", func() {
	var limiter *FixedWindowLimiter

	BeforeEach(func() {
		limiter = NewFixedWindowLimiter()
	})

	It("allows up to the maximum within one window", func() {
		for i := 0; i < 5; i++ {
			Expect(limiter.Allow("u1:/quotes", 5, time.Minute)).To(BeTrue())
		}
		Expect(limiter.Allow("u1:/quotes", 5, time.Minute)).To(BeFalse())
	})

	It("tracks keys independently", func() {
		Expect(limiter.Allow("u1:/quotes", 1, time.Minute)).To(BeTrue())
		Expect(limiter.Allow("u1:/quotes", 1, time.Minute)).To(BeFalse())
		Expect(limiter.Allow("u2:/quotes", 1, time.Minute)).To(BeTrue())
		Expect(limiter.Allow("u1:/orders", 1, time.Minute)).To(BeTrue())
	})

	It("restarts the count after the window deadline", func() {
		window := 30 * time.Millisecond
		Expect(limiter.Allow("u1:/quotes", 1, window)).To(BeTrue())
		Expect(limiter.Allow("u1:/quotes", 1, window)).To(BeFalse())

		time.Sleep(window + 20*time.Millisecond)

		Expect(limiter.Allow("u1:/quotes", 1, window)).To(BeTrue())
		Expect(limiter.Allow("u1:/quotes", 1, window)).To(BeFalse())
	})

	It("drops expired windows on cleanup", func() {
		window := 10 * time.Millisecond
		limiter.Allow("stale", 1, window)
		time.Sleep(window + 10*time.Millisecond)
		limiter.Cleanup()

		limiter.mu.Lock()
		_, exists := limiter.entries["stale"]
		limiter.mu.Unlock()
		Expect(exists).To(BeFalse())
	})

	It("never over-admits under concurrent access", func() {
		const workers = 20
		var wg sync.WaitGroup
		var mu sync.Mutex
		allowed := 0

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if limiter.Allow("shared", 5, time.Minute) {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		Expect(allowed).To(Equal(5))
	})
})
