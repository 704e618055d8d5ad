package bridge_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/particlesim/internal/bridge"
	"github.com/san-kum/particlesim/internal/dynamo"
	"github.com/san-kum/particlesim/internal/physics"
)

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) { return 0, errors.New("host gone") }

var _ = Describe("Encode", func() {
	It("uses the x/y/vx/vy/mass transfer shape", func() {
		data, err := bridge.Encode(dynamo.Snapshot{{X: 1, Y: 2, VX: 3, VY: 4, Mass: 1}})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal(`[{"x":1,"y":2,"vx":3,"vy":4,"mass":1}]`))
	})

	It("encodes an empty population as an empty array", func() {
		data, err := bridge.Encode(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(data)).To(Equal("[]"))
	})

	It("surfaces unrepresentable values as ErrEncode", func() {
		_, err := bridge.Encode(dynamo.Snapshot{{X: math.NaN(), Mass: 1}})
		Expect(err).To(MatchError(dynamo.ErrEncode))
	})

	It("degrades to null for hosts that cannot take an error", func() {
		data := bridge.EncodeOrNull(dynamo.Snapshot{{VX: math.Inf(1), Mass: 1}})
		Expect(string(data)).To(Equal("null"))
	})

	It("decodes what it encodes", func() {
		in := physics.New(5, 800, 600, physics.WithSeed(8)).Particles()
		data, err := bridge.Encode(in)
		Expect(err).NotTo(HaveOccurred())

		out, err := bridge.Decode(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(in))
	})

	It("decodes null as an empty snapshot", func() {
		out, err := bridge.Decode([]byte("null"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(BeEmpty())
	})

	It("rejects malformed input", func() {
		_, err := bridge.Decode([]byte("{"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Handle", func() {
	var (
		host *bytes.Buffer
		h    *bridge.Handle
	)

	BeforeEach(func() {
		host = &bytes.Buffer{}
		h = bridge.NewHandle(3, 800, 600, 42, host)
	})

	It("logs one diagnostic line per step", func() {
		h.Step()
		h.Step()

		lines := strings.Split(strings.TrimSpace(host.String()), "\n")
		Expect(lines).To(HaveLen(2))

		p := h.Simulation().Particles()[0]
		Expect(lines[1]).To(Equal(dynamo.Diagnostic{X: p.X, Y: p.Y, VX: p.VX, VY: p.VY}.String()))
		Expect(lines[1]).To(MatchRegexp(`^Particle 0 - Position: \(-?\d+\.\d{2}, -?\d+\.\d{2}\), Velocity: \(-?\d+\.\d{2}, -?\d+\.\d{2}\)$`))
	})

	It("stays silent for an empty population", func() {
		empty := bridge.NewHandle(0, 800, 600, 1, host)
		empty.Step()
		Expect(host.Len()).To(BeZero())
		Expect(string(empty.GetParticles())).To(Equal("[]"))
	})

	It("returns particles in index order", func() {
		out, err := bridge.Decode(h.GetParticles())
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(h.Simulation().Particles()))
	})

	It("changes only the named parameter", func() {
		before := h.GetParticles()
		h.SetDt(0.01)
		h.SetSurfaceTension(4)

		Expect(h.GetParticles()).To(Equal(before))
		Expect(h.Simulation().Dt()).To(Equal(0.01))
		Expect(h.Simulation().SurfaceTension()).To(Equal(4.0))
	})

	It("tolerates a nil host writer", func() {
		quiet := bridge.NewHandle(2, 800, 600, 1, nil)
		Expect(quiet.Step).NotTo(Panic())
	})
})

var _ = Describe("Stream", func() {
	It("writes one JSON frame per line", func() {
		sys := physics.New(4, 800, 600, physics.WithSeed(2))
		var out bytes.Buffer

		Expect(bridge.Stream(context.Background(), &out, sys, 5)).To(Succeed())

		scanner := bufio.NewScanner(&out)
		n := 0
		for scanner.Scan() {
			var f bridge.Frame
			Expect(json.Unmarshal(scanner.Bytes(), &f)).To(Succeed())
			Expect(f.Step).To(Equal(n))
			Expect(f.Dt).To(Equal(physics.DefaultDt))

			ps, err := bridge.Decode(f.Particles)
			Expect(err).NotTo(HaveOccurred())
			Expect(ps).To(HaveLen(4))
			n++
		}
		Expect(n).To(Equal(5))
		Expect(sys.Steps()).To(Equal(5))
	})

	It("reports writer failures", func() {
		sys := physics.New(1, 800, 600)
		err := bridge.Stream(context.Background(), failingWriter{}, sys, 3)
		Expect(err).To(MatchError(ContainSubstring("host gone")))
	})

	It("stops on cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := bridge.Stream(ctx, &bytes.Buffer{}, physics.New(1, 800, 600), 3)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})
})
