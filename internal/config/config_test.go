package config

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
)

var _ = Describe("config", func() {
	Context("defaults", func() {
		It("describes the classic copy demonstration", func() {
			cfg := DefaultConfig()
			Expect(cfg.Values).To(Equal([]int{0, 1, 2, 3, 4}))
			Expect(cfg.Mutation).To(Equal(MutationConfig{Index: 0, Value: 6}))
			Expect(cfg.Appends).To(Equal(DefaultAppends))
			Expect(cfg.DataDir).To(Equal(DefaultDataDir))
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Context("validation", func() {
		It("rejects negative appends", func() {
			cfg := DefaultConfig()
			cfg.Appends = -1
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("appends")))
		})

		It("rejects a negative limit", func() {
			cfg := DefaultConfig()
			cfg.LimitBytes = -5
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("limit_bytes")))
		})

		It("rejects a mutation index outside the values", func() {
			cfg := DefaultConfig()
			cfg.Mutation.Index = 5
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("mutation index 5")))
		})

		It("ignores the mutation index when there are no values", func() {
			cfg := DefaultConfig()
			cfg.Values = nil
			cfg.Mutation.Index = 9
			Expect(cfg.Validate()).To(Succeed())
		})
	})

	Context("files", func() {
		var dir string

		BeforeEach(func() {
			dir = GinkgoT().TempDir()
		})

		It("round-trips through yaml", func() {
			path := filepath.Join(dir, "cfg.yaml")
			cfg := DefaultConfig()
			cfg.Values = []int{9, 8, 7}
			cfg.Mutation = MutationConfig{Index: 2, Value: 70}
			cfg.LimitBytes = 4096

			Expect(Save(path, cfg)).To(Succeed())
			loaded, err := Load(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded).To(Equal(cfg))
		})

		It("keeps defaults for fields the file omits", func() {
			path := filepath.Join(dir, "partial.yaml")
			Expect(os.WriteFile(path, []byte("appends: 3\n"), 0644)).To(Succeed())

			loaded, err := Load(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded.Appends).To(Equal(3))
			Expect(loaded.Values).To(Equal([]int{0, 1, 2, 3, 4}))
			Expect(loaded.DataDir).To(Equal(DefaultDataDir))
		})

		It("reports invalid files", func() {
			path := filepath.Join(dir, "bad.yaml")
			Expect(os.WriteFile(path, []byte("appends: -2\n"), 0644)).To(Succeed())

			_, err := Load(path)
			Expect(err).To(MatchError(ContainSubstring("invalid config")))
		})

		It("reports missing files", func() {
			_, err := Load(filepath.Join(dir, "missing.yaml"))
			Expect(err).To(HaveOccurred())
			Expect(os.IsNotExist(errors.Cause(err))).To(BeTrue())
		})
	})

	Context("presets", func() {
		It("lists presets in order", func() {
			Expect(ListPresets()).To(Equal([]string{"classic", "empty", "growth", "single"}))
		})

		It("returns independent copies", func() {
			a := GetPreset("classic")
			Expect(a).ToNot(BeNil())
			a.Values[0] = 100

			b := GetPreset("classic")
			Expect(b.Values[0]).To(Equal(0))
			Expect(b.DataDir).To(Equal(DefaultDataDir))
		})

		It("returns nil for unknown presets", func() {
			Expect(GetPreset("nonexistent")).To(BeNil())
		})

		It("only holds valid presets", func() {
			for _, name := range ListPresets() {
				Expect(GetPreset(name).Validate()).To(Succeed(), name)
			}
		})
	})
})
