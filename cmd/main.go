package main

import (
	"log"
	"math/rand/v2"

	"github.com/arborix/phylotree"
)

// prngSampler adapts *rand.Rand to phylotree.Sampler.
type prngSampler struct{ prng *rand.Rand }

func (s prngSampler) IntN(n int) int { return s.prng.IntN(n) }

func main() {
	log.SetFlags(log.Lmicroseconds)
	prng := rand.New(rand.NewPCG(42, 42))
	sampler := prngSampler{prng}

	t, err := phylotree.Yule(20, sampler)
	if err != nil {
		log.Fatalf("Yule: %v", err)
	}
	log.Printf("Yule(20): %d nodes, newick: %s", t.Len(), t.Newick())

	t.ApplyZeta(phylotree.ZetaUnweightedDepth)
	t.Precompute()

	u, err := phylotree.Uniform(20, sampler)
	if err != nil {
		log.Fatalf("Uniform: %v", err)
	}
	u.ApplyZeta(phylotree.ZetaUnweightedDepth)

	log.Printf("Robinson-Foulds(Yule, Uniform) = %d", t.RobinsonFoulds(u))
	log.Printf("ClusterAffinity(Yule, Uniform) = %d", t.ClusterAffinity(u))

	cd, err := t.CopheneticDistance(u, 2)
	if err != nil {
		log.Fatalf("CopheneticDistance: %v", err)
	}
	log.Printf("CopheneticDistance_p2(Yule, Uniform) = %v", cd)

	log.Printf("nexus: %s", t.Nexus("yule20"))
}
