package cmd

import (
	"fmt"
	"log/slog"

	"github.com/sockomode/symrel/boolfn"
	"github.com/sockomode/symrel/config"
	"github.com/sockomode/symrel/engine"
	"github.com/sockomode/symrel/graph"
)

const (
	relationEdges   = "RR"
	relationSquare  = "RR2"
	relationClosure = "RR2star"
)

// registry resolves the names used in queries to the configured sets and the
// relations derived from the graph rule.
type registry struct {
	engine    *engine.Engine
	sets      map[string]engine.NodeSet
	relations map[string]engine.Relation
}

func newRegistry(cfg *config.Config, logger *slog.Logger) (*registry, error) {
	domain, err := engine.NewDomain(cfg.Domain)
	if err != nil {
		return nil, err
	}
	ordering, err := boolfn.ParseOrdering(cfg.Ordering)
	if err != nil {
		return nil, err
	}

	nsCfg := cfg.Namespaces
	space, err := boolfn.New(domain.Width, []string{nsCfg.Source, nsCfg.Target, nsCfg.Temp}, boolfn.WithOrdering(ordering))
	if err != nil {
		return nil, err
	}
	nss, err := engine.LookupNamespaces(space, nsCfg.Source, nsCfg.Target, nsCfg.Temp)
	if err != nil {
		return nil, err
	}
	e, err := engine.New(space, domain, nss,
		engine.WithMaxIterations(cfg.MaxIterations),
		engine.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	reg := &registry{
		engine:    e,
		sets:      map[string]engine.NodeSet{},
		relations: map[string]engine.Relation{},
	}

	edge, err := graph.CompileEdgeRule(cfg.Graph.Rule)
	if err != nil {
		return nil, err
	}
	rr, err := e.BuildRelationFunc(graph.Bounded(domain.Size, edge, cfg.Graph.ExcludeLast))
	if err != nil {
		return nil, fmt.Errorf("unable to build the edge relation: %w", err)
	}
	reg.relations[relationEdges] = rr

	for _, name := range cfg.SetNames() {
		s := cfg.Sets[name]
		ns, _ := space.Namespace(s.Namespace)

		var set engine.NodeSet
		if s.Rule != "" {
			member, err := graph.CompileMembershipRule(s.Rule)
			if err != nil {
				return nil, fmt.Errorf("set %s: %w", name, err)
			}
			set, err = e.BuildSetFunc(ns, member)
			if err != nil {
				return nil, fmt.Errorf("set %s: %w", name, err)
			}
		} else {
			set, err = e.BuildSet(ns, s.Members)
			if err != nil {
				return nil, fmt.Errorf("set %s: %w", name, err)
			}
		}
		reg.sets[name] = set
		logger.Debug("built set", "name", name, "namespace", s.Namespace)
	}

	return reg, nil
}

// relation returns the named relation, squaring on first use.
func (r *registry) relation(name string) (engine.Relation, error) {
	if rel, ok := r.relations[name]; ok {
		return rel, nil
	}

	var rel engine.Relation
	switch name {
	case relationSquare:
		rr, _ := r.relation(relationEdges)
		sq, err := r.engine.Square(rr)
		if err != nil {
			return engine.Relation{}, err
		}
		rel = sq
	case relationClosure:
		rr2, err := r.relation(relationSquare)
		if err != nil {
			return engine.Relation{}, err
		}
		star, _, err := r.engine.Fixpoint(rr2)
		if err != nil {
			return engine.Relation{}, err
		}
		rel = star
	default:
		return engine.Relation{}, fmt.Errorf("unknown relation %q", name)
	}

	r.relations[name] = rel
	return rel, nil
}

func (r *registry) set(name string) (engine.NodeSet, error) {
	s, ok := r.sets[name]
	if !ok {
		return engine.NodeSet{}, fmt.Errorf("unknown set %q", name)
	}
	return s, nil
}
