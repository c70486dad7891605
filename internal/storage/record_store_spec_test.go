package storage_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/storage"
)

var _ = Describe("RecordStore", func() {
	var (
		dir   string
		path  string
		store *storage.RecordStore
	)

	params := reactor.Params{
		FlowRate:             1,
		InletConcentration:   4,
		InitialConcentration: 1,
		Volume:               2,
		FinalTime:            6,
		TimeStep:             0.1,
	}

	reopen := func() {
		if store != nil {
			Expect(store.Close()).To(Succeed())
		}
		b, err := storage.OpenFile(path)
		Expect(err).NotTo(HaveOccurred())
		store, err = storage.Open(b)
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		path = filepath.Join(dir, storage.DefaultImagePath)
		store = nil
		reopen()
	})

	AfterEach(func() {
		Expect(store.Close()).To(Succeed())
	})

	It("creates an image of five empty slots", func() {
		Expect(store.Created()).To(BeTrue())
		info, err := os.Stat(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).To(BeEquivalentTo(storage.ImageSizeBytes))

		for n := 1; n <= storage.Capacity; n++ {
			_, err := store.Select(n)
			Expect(err).To(MatchError(storage.ErrSlotEmpty))
		}
	})

	Context("after saving to a slot", func() {
		BeforeEach(func() {
			Expect(store.Overwrite(3, params)).To(Succeed())
		})

		It("returns the same parameters after reopening", func() {
			reopen()
			Expect(store.Created()).To(BeFalse())
			Expect(store.Select(3)).To(Equal(params))
		})

		It("replaces the slot on a second save", func() {
			next := params
			next.FlowRate = 3
			Expect(store.Overwrite(3, next)).To(Succeed())
			reopen()
			Expect(store.Select(3)).To(Equal(next))
		})

		It("leaves the other slots empty", func() {
			reopen()
			for _, n := range []int{1, 2, 4, 5} {
				s, err := store.Slots().Get(n)
				Expect(err).NotTo(HaveOccurred())
				Expect(s.IsEmpty()).To(BeTrue())
			}
		})
	})

	It("refuses a corrupt image", func() {
		Expect(store.Close()).To(Succeed())
		Expect(os.WriteFile(path, make([]byte, storage.ImageSizeBytes-1), 0o644)).To(Succeed())

		b, err := storage.OpenFile(path)
		Expect(err).NotTo(HaveOccurred())
		_, err = storage.Open(b)
		Expect(err).To(MatchError(storage.ErrCorruptImage))

		store, err = storage.Open(&emptyBackend{})
		Expect(err).NotTo(HaveOccurred())
		Expect(b.Close()).To(Succeed())
	})
})

type emptyBackend struct{}

func (emptyBackend) Load() (storage.Slots, error) { return storage.Slots{}, storage.ErrNoImage }
func (emptyBackend) Store(storage.Slots) error    { return nil }
func (emptyBackend) Close() error                 { return nil }
