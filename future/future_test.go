package future

import (
	"context"
	"errors"
	"time"

	"github.com/aphistic/sweet"
	. "github.com/onsi/gomega"
)

type FutureSuite struct{}

func (s *FutureSuite) TestCompleteOnce(t sweet.T) {
	f := New[string]()
	Expect(f.Completed()).To(BeFalse())
	Expect(f.Complete("first", nil)).To(BeTrue())
	Expect(f.Complete("second", errors.New("utoh"))).To(BeFalse())

	value, err := f.Result()
	Expect(err).To(BeNil())
	Expect(value).To(Equal("first"))
	Expect(f.Completed()).To(BeTrue())
}

func (s *FutureSuite) TestDoneClosesOnComplete(t sweet.T) {
	f := New[int]()
	Consistently(f.Done()).ShouldNot(BeClosed())

	go f.Complete(42, nil)
	Eventually(f.Done()).Should(BeClosed())
}

func (s *FutureSuite) TestResolvedAndFailed(t sweet.T) {
	value, err := Resolved(3).Result()
	Expect(err).To(BeNil())
	Expect(value).To(Equal(3))

	_, err = Failed[int](errors.New("utoh")).Result()
	Expect(err).To(MatchError("utoh"))
}

func (s *FutureSuite) TestWaitContextCanceled(t sweet.T) {
	var (
		f           = New[int]()
		ctx, cancel = context.WithTimeout(context.Background(), time.Millisecond*10)
	)

	defer cancel()

	_, err := f.Wait(ctx)
	Expect(err).To(Equal(context.DeadlineExceeded))
	Expect(f.Completed()).To(BeFalse())
}

func (s *FutureSuite) TestThen(t sweet.T) {
	var (
		source = New[int]()
		target = Then(source, New[string](), func(v int, err error) (string, error) {
			if v == 2 {
				return "two", err
			}

			return "", errors.New("unexpected")
		})
	)

	source.Complete(2, nil)
	Eventually(target.Done()).Should(BeClosed())
	Expect(target.Result()).To(Equal("two"))
}
