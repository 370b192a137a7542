package provider

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmagro/evm-rpc-client/internal/config"
)

// DefaultMaxDrift is how many blocks apart provider heads may be before the
// heights are flagged.
const DefaultMaxDrift = 2

// Head is one provider's answer during a consistency check.
type Head struct {
	Name   string
	Height uint64
	Hash   string // block hash at the reference height
	Err    error
}

// HashGroup lists the providers that reported the same block hash.
type HashGroup struct {
	Hash      string   `json:"hash"`
	Providers []string `json:"providers"`
}

// Consistency is the result of comparing providers against each other.
type Consistency struct {
	Heads           []Head
	MaxHeight       uint64
	Leader          string // provider reporting MaxHeight
	ReferenceHeight uint64
	Drift           uint64
	HeightsAgree    bool
	HashesAgree     bool
	Groups          []HashGroup // largest group first
	Issues          []string
}

// Consistent reports whether heads are within drift and all hashes match.
func (c *Consistency) Consistent() bool {
	return c.HeightsAgree && c.HashesAgree
}

// CheckConsistency compares providers in two phases. First every provider
// is asked for its head height. Then each provider that answered is asked
// for the block at the lowest head seen, so hashes are only ever compared
// for the same height.
//
// A non-empty block skips the height comparison and compares hashes at
// that block number or tag instead.
func CheckConsistency(ctx context.Context, pool *ClientPool, providers []config.Provider, block string, maxDrift uint64) *Consistency {
	c := &Consistency{Heads: make([]Head, len(providers))}
	for i, p := range providers {
		c.Heads[i].Name = p.Name
	}

	ref := block
	if ref == "" {
		heights := ExecuteAll(ctx, providers, func(ctx context.Context, p config.Provider) (uint64, error) {
			return pool.Get(p).BlockNumber(ctx)
		})
		for _, r := range heights {
			c.Heads[r.Index].Height = r.Value
			c.Heads[r.Index].Err = r.Err
		}
		c.compareHeights(maxDrift)
		if c.Leader == "" {
			c.Issues = append(c.Issues, "no provider returned a head height")
			return c
		}
		ref = fmt.Sprintf("0x%x", c.ReferenceHeight)
	} else {
		c.HeightsAgree = true
	}

	var pending []config.Provider
	for i, p := range providers {
		if c.Heads[i].Err == nil {
			pending = append(pending, p)
		}
	}
	hashes := ExecuteAll(ctx, pending, func(ctx context.Context, p config.Provider) (string, error) {
		b, err := pool.Get(p).GetBlockByNumber(ctx, ref, false)
		if err != nil {
			return "", err
		}
		return b.Hash, nil
	})
	for _, r := range hashes {
		h := c.head(r.ProviderName)
		h.Hash, h.Err = r.Value, r.Err
	}
	c.compareHashes(ref)
	return c
}

func (c *Consistency) head(name string) *Head {
	for i := range c.Heads {
		if c.Heads[i].Name == name {
			return &c.Heads[i]
		}
	}
	return nil
}

func (c *Consistency) compareHeights(maxDrift uint64) {
	first := true
	for _, h := range c.Heads {
		if h.Err != nil {
			continue
		}
		if first || h.Height > c.MaxHeight {
			c.MaxHeight, c.Leader = h.Height, h.Name
		}
		if first || h.Height < c.ReferenceHeight {
			c.ReferenceHeight = h.Height
		}
		first = false
	}

	c.Drift = c.MaxHeight - c.ReferenceHeight
	c.HeightsAgree = c.Drift <= maxDrift
	if !c.HeightsAgree {
		c.Issues = append(c.Issues, fmt.Sprintf("head heights differ by %d blocks (max %d)", c.Drift, maxDrift))
	}
}

func (c *Consistency) compareHashes(ref string) {
	byHash := make(map[string][]string)
	for _, h := range c.Heads {
		if h.Err == nil && h.Hash != "" {
			byHash[h.Hash] = append(byHash[h.Hash], h.Name)
		}
	}
	for hash, names := range byHash {
		c.Groups = append(c.Groups, HashGroup{Hash: hash, Providers: names})
	}
	slices.SortFunc(c.Groups, func(a, b HashGroup) int {
		if d := len(b.Providers) - len(a.Providers); d != 0 {
			return d
		}
		return strings.Compare(a.Hash, b.Hash)
	})

	c.HashesAgree = len(c.Groups) == 1
	switch {
	case len(c.Groups) == 0:
		c.Issues = append(c.Issues, fmt.Sprintf("no provider returned a block hash at %s", ref))
	case len(c.Groups) > 1:
		for _, g := range c.Groups[1:] {
			c.Issues = append(c.Issues, fmt.Sprintf("%s report a different hash at %s (%s)",
				strings.Join(g.Providers, ", "), ref, g.Hash))
		}
	}
}
