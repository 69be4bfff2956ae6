// Package boolfn wraps a binary decision diagram library behind the small set
// of operations the relation engine needs: namespaced variable declaration,
// literals, connectives, cofactoring, substitution, quantification and
// semantic equivalence.
//
// A Space owns one BDD. Functions built in one Space must never be mixed with
// functions from another. All operations on a Space are serialised, so a
// single Space may be shared by concurrent readers.
package boolfn

import (
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/dalzilio/rudd"
)

// Ordering decides how the variables of the declared namespaces are laid out
// in the BDD variable order.
type Ordering int

const (
	// Interleaved places bit i of every namespace next to each other. This is
	// the ordering that keeps relations between namespaces small.
	Interleaved Ordering = iota
	// Blocked places all the bits of a namespace together, one namespace
	// after the other.
	Blocked
)

func (o Ordering) String() string {
	switch o {
	case Interleaved:
		return "interleaved"
	case Blocked:
		return "blocked"
	default:
		return fmt.Sprintf("Ordering(%d)", int(o))
	}
}

// ParseOrdering converts the textual name of an ordering.
func ParseOrdering(s string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "interleaved":
		return Interleaved, nil
	case "blocked":
		return Blocked, nil
	}
	return 0, fmt.Errorf("unknown variable ordering %q", s)
}

// Namespace is a named, ordered group of BDD variables. Bit 0 is the most
// significant bit of an encoded value.
type Namespace struct {
	name string
	vars []int
}

func (n Namespace) Name() string {
	return n.name
}

func (n Namespace) Width() int {
	return len(n.vars)
}

// Var returns the BDD variable holding bit i.
func (n Namespace) Var(i int) int {
	return n.vars[i]
}

func (n Namespace) Vars() []int {
	vars := make([]int, len(n.vars))
	copy(vars, n.vars)
	return vars
}

// Disjoint reports whether the two namespaces share no variable.
func (n Namespace) Disjoint(other Namespace) bool {
	seen := make(map[int]struct{}, len(n.vars))
	for _, v := range n.vars {
		seen[v] = struct{}{}
	}
	for _, v := range other.vars {
		if _, ok := seen[v]; ok {
			return false
		}
	}
	return true
}

func (n Namespace) String() string {
	return n.name
}

// Literal is a variable together with its polarity.
type Literal struct {
	Var      int
	Positive bool
}

// Func is an immutable Boolean function owned by a Space.
type Func struct {
	node rudd.Node
}

// Valid reports whether f was produced by a Space.
func (f Func) Valid() bool {
	return f.node != nil
}

type options struct {
	ordering  Ordering
	nodesize  int
	cachesize int
}

// Option configures a Space.
type Option func(*options)

func WithOrdering(o Ordering) Option {
	return func(opts *options) { opts.ordering = o }
}

// WithNodesize sets the initial number of nodes of the underlying BDD.
func WithNodesize(n int) Option {
	return func(opts *options) { opts.nodesize = n }
}

// WithCachesize sets the initial size of the operation caches.
func WithCachesize(n int) Option {
	return func(opts *options) { opts.cachesize = n }
}

type replaceKey struct {
	from, to string
}

// Space declares a fixed set of namespaces of equal width and builds Boolean
// functions over their variables.
type Space struct {
	mu sync.Mutex

	bdd      *rudd.BDD
	ordering Ordering
	width    int

	namespaces []Namespace
	byName     map[string]Namespace
	replacers  map[replaceKey]rudd.Replacer
}

// New declares one namespace of the given width per name.
func New(width int, names []string, opts ...Option) (*Space, error) {
	if width <= 0 {
		return nil, fmt.Errorf("namespace width must be positive, got %d", width)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("at least one namespace must be declared")
	}

	o := options{ordering: Interleaved, nodesize: 10000, cachesize: 5000}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Space{
		ordering:  o.ordering,
		width:     width,
		byName:    map[string]Namespace{},
		replacers: map[replaceKey]rudd.Replacer{},
	}

	for k, name := range names {
		if name == "" {
			return nil, fmt.Errorf("namespace %d has an empty name", k)
		}
		if _, ok := s.byName[name]; ok {
			return nil, fmt.Errorf("namespace %q is declared twice", name)
		}

		ns := Namespace{name: name, vars: make([]int, width)}
		for i := range ns.vars {
			switch o.ordering {
			case Interleaved:
				ns.vars[i] = i*len(names) + k
			case Blocked:
				ns.vars[i] = k*width + i
			default:
				return nil, fmt.Errorf("unsupported ordering %v", o.ordering)
			}
		}
		s.namespaces = append(s.namespaces, ns)
		s.byName[name] = ns
	}

	bdd, err := rudd.New(width*len(names), rudd.Nodesize(o.nodesize), rudd.Cachesize(o.cachesize))
	if err != nil {
		return nil, fmt.Errorf("unable to create the BDD: %w", err)
	}
	s.bdd = bdd

	return s, nil
}

// Namespace looks up a declared namespace by name.
func (s *Space) Namespace(name string) (Namespace, bool) {
	ns, ok := s.byName[name]
	return ns, ok
}

// Namespaces returns the declared namespaces in declaration order.
func (s *Space) Namespaces() []Namespace {
	nss := make([]Namespace, len(s.namespaces))
	copy(nss, s.namespaces)
	return nss
}

func (s *Space) Width() int {
	return s.width
}

func (s *Space) Ordering() Ordering {
	return s.ordering
}

func (s *Space) owns(ns Namespace) error {
	declared, ok := s.byName[ns.name]
	if !ok || len(declared.vars) != len(ns.vars) {
		return fmt.Errorf("namespace %q is not declared in this space", ns.name)
	}
	for i := range ns.vars {
		if declared.vars[i] != ns.vars[i] {
			return fmt.Errorf("namespace %q is not declared in this space", ns.name)
		}
	}
	return nil
}

// err reports the sticky error of the BDD, if any.
func (s *Space) err() error {
	if msg := s.bdd.Error(); msg != "" {
		return fmt.Errorf("bdd: %s", msg)
	}
	return nil
}

func (s *Space) wrap(n rudd.Node) (Func, error) {
	if n == nil {
		if err := s.err(); err != nil {
			return Func{}, err
		}
		return Func{}, fmt.Errorf("bdd: operation returned no node")
	}
	return Func{node: n}, nil
}

func nodes(fs []Func) []rudd.Node {
	ns := make([]rudd.Node, len(fs))
	for i, f := range fs {
		ns[i] = f.node
	}
	return ns
}

func (s *Space) True() Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.bdd.True()}
}

func (s *Space) False() Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.bdd.False()}
}

func (s *Space) literal(l Literal) rudd.Node {
	if l.Positive {
		return s.bdd.Ithvar(l.Var)
	}
	return s.bdd.NIthvar(l.Var)
}

// Literal returns the atomic predicate for l.
func (s *Space) Literal(l Literal) Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.literal(l)}
}

func (s *Space) cube(lits []Literal) rudd.Node {
	ns := make([]rudd.Node, len(lits))
	for i, l := range lits {
		ns[i] = s.literal(l)
	}
	return s.bdd.And(ns...)
}

// Cube returns the conjunction of the given literals. An empty cube is true.
func (s *Space) Cube(lits []Literal) Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.cube(lits)}
}

// And returns the conjunction of fs. The conjunction of nothing is true.
func (s *Space) And(fs ...Func) Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.bdd.And(nodes(fs)...)}
}

// Or returns the disjunction of fs. The disjunction of nothing is false.
func (s *Space) Or(fs ...Func) Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.bdd.Or(nodes(fs)...)}
}

func (s *Space) Not(f Func) Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.bdd.Not(f.node)}
}

// Implies returns a -> b.
func (s *Space) Implies(a, b Func) Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.bdd.Imp(a.node, b.node)}
}

// Cofactor restricts f to the assignment described by lits. Every literal
// fixes its variable to its polarity.
func (s *Space) Cofactor(f Func, lits []Literal) Func {
	s.mu.Lock()
	defer s.mu.Unlock()

	vars := make([]int, len(lits))
	for i, l := range lits {
		vars[i] = l.Var
	}
	// f restricted to a total point over vars is Exists vars . f & point.
	return Func{node: s.bdd.AndExist(s.bdd.Makeset(vars), f.node, s.cube(lits))}
}

func (s *Space) replacer(from, to Namespace) (rudd.Replacer, error) {
	key := replaceKey{from: from.name, to: to.name}
	if r, ok := s.replacers[key]; ok {
		return r, nil
	}
	r, err := s.bdd.NewReplacer(from.vars, to.vars)
	if err != nil {
		return nil, fmt.Errorf("unable to rename %s to %s: %w", from, to, err)
	}
	s.replacers[key] = r
	return r, nil
}

// Substitute renames every variable of namespace from to the variable of the
// same bit in namespace to.
func (s *Space) Substitute(f Func, from, to Namespace) (Func, error) {
	if err := s.owns(from); err != nil {
		return Func{}, err
	}
	if err := s.owns(to); err != nil {
		return Func{}, err
	}
	if from.name == to.name {
		return f, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, err := s.replacer(from, to)
	if err != nil {
		return Func{}, err
	}
	return s.wrap(s.bdd.Replace(f.node, r))
}

func (s *Space) varset(nss []Namespace) rudd.Node {
	var vars []int
	for _, ns := range nss {
		vars = append(vars, ns.vars...)
	}
	return s.bdd.Makeset(vars)
}

// Exists projects the namespaces nss out of f.
func (s *Space) Exists(f Func, nss ...Namespace) Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.bdd.Exist(f.node, s.varset(nss))}
}

// AndExists computes Exists nss . a & b without building the conjunction.
func (s *Space) AndExists(a, b Func, nss ...Namespace) Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.bdd.AndExist(s.varset(nss), a.node, b.node)}
}

// Forall universally quantifies the namespaces nss in f.
func (s *Space) Forall(f Func, nss ...Namespace) Func {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Func{node: s.bdd.Not(s.bdd.Exist(s.bdd.Not(f.node), s.varset(nss)))}
}

// Equivalent reports whether a and b denote the same Boolean function. BDDs
// are canonical, so this is a node comparison.
func (s *Space) Equivalent(a, b Func) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bdd.Equal(a.node, b.node)
}

// IsTautology reports whether f is the constant true function.
func (s *Space) IsTautology(f Func) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bdd.Equal(f.node, s.bdd.True())
}

// IsContradiction reports whether f is the constant false function.
func (s *Space) IsContradiction(f Func) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bdd.Equal(f.node, s.bdd.False())
}

// Satcount counts the assignments to the variables of nss satisfying f. The
// support of f must be contained in nss.
func (s *Space) Satcount(f Func, nss ...Namespace) *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.bdd.Satcount(f.node)
	covered := 0
	for _, ns := range nss {
		covered += len(ns.vars)
	}
	if free := s.bdd.Varnum() - covered; free > 0 {
		count.Rsh(count, uint(free))
	}
	return count
}

// NodeCount returns the number of BDD nodes reachable from f.
func (s *Space) NodeCount(f Func) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	_ = s.bdd.Allnodes(func(id, level, low, high int) error {
		count++
		return nil
	}, f.node)
	return count
}

// Err returns the error status of the underlying BDD.
func (s *Space) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err()
}
