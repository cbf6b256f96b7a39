package fiber

// Site is one binding site in the arena. Offset tracks displacement from
// the site's unstressed anchor position on its owner; it is zeroed on
// unbind (the fixed policy: no residual strain survives a detachment).
// Stiffness is the local spring constant, 0 for rigid passive sites.
type Site struct {
	Owner     Protein
	Index     int
	Partner   SiteID
	Offset    float64
	Stiffness float64
}

// Bound reports whether the site has a partner.
func (s *Site) Bound() bool { return s.Partner != NoSite }

// RestoringForce is the spring-law force for the current offset, -k·offset.
func (s *Site) RestoringForce() float64 { return -s.Stiffness * s.Offset }

// StoredEnergy is the elastic energy at the current offset, the integral of
// RestoringForce magnitude from 0 to offset.
func (s *Site) StoredEnergy() float64 { return 0.5 * s.Stiffness * s.Offset * s.Offset }

// Arena is the central indexed collection of binding sites. Sites are
// created once with their owning protein and addressed by stable SiteIDs;
// the reciprocal partner references that form each bound pair live here
// rather than as pointers between proteins.
type Arena struct {
	sites []Site
}

func NewArena() *Arena {
	return &Arena{sites: make([]Site, 0, 64)}
}

// Add registers a new site for owner and returns its id.
func (a *Arena) Add(owner Protein, index int, stiffness float64) SiteID {
	a.sites = append(a.sites, Site{
		Owner:     owner,
		Index:     index,
		Partner:   NoSite,
		Stiffness: stiffness,
	})
	return SiteID(len(a.sites) - 1)
}

func (a *Arena) Len() int { return len(a.sites) }

func (a *Arena) valid(id SiteID) bool {
	return id >= 0 && int(id) < len(a.sites)
}

// Site returns the addressed site. Panics on an invalid id: site ids are
// engine-internal and an out-of-range one is a programming error.
func (a *Arena) Site(id SiteID) *Site {
	if !a.valid(id) {
		panic(ErrInvalidSite)
	}
	return &a.sites[id]
}

// Bound reports whether the site is attached.
func (a *Arena) Bound(id SiteID) bool { return a.Site(id).Bound() }

// Partner returns the linked site id, NoSite when unbound.
func (a *Arena) Partner(id SiteID) SiteID { return a.Site(id).Partner }

// Pos returns the site's current position from its owner's geometry.
func (a *Arena) Pos(id SiteID) float64 {
	s := a.Site(id)
	return s.Owner.SitePos(s.Index)
}

// Bind links two unbound sites reciprocally. Side effects are confined to
// the two sites (plus owner OnBind hooks); both sites are left untouched on
// error.
func (a *Arena) Bind(s, t SiteID) error {
	if !a.valid(s) || !a.valid(t) {
		return &BindingStateError{Op: "bind", Site: s, Partner: t, Err: ErrInvalidSite}
	}
	if s == t {
		return &BindingStateError{Op: "bind", Site: s, Partner: t, Err: ErrSelfBind}
	}
	if a.sites[s].Bound() {
		return &BindingStateError{Op: "bind", Site: s, Partner: t, Err: ErrAlreadyBound}
	}
	if a.sites[t].Bound() {
		return &BindingStateError{Op: "bind", Site: t, Partner: s, Err: ErrAlreadyBound}
	}
	a.sites[s].Partner = t
	a.sites[t].Partner = s
	if o, ok := a.sites[s].Owner.(BindObserver); ok {
		o.OnBind(a.sites[s].Index)
	}
	if o, ok := a.sites[t].Owner.(BindObserver); ok {
		o.OnBind(a.sites[t].Index)
	}
	return nil
}

// Unbind severs a bound pair, clearing both partner references and zeroing
// both offsets.
func (a *Arena) Unbind(s SiteID) error {
	if !a.valid(s) {
		return &BindingStateError{Op: "unbind", Site: s, Partner: NoSite, Err: ErrInvalidSite}
	}
	t := a.sites[s].Partner
	if t == NoSite {
		return &BindingStateError{Op: "unbind", Site: s, Partner: NoSite, Err: ErrNotBound}
	}
	if !a.valid(t) || a.sites[t].Partner != s {
		return &BindingStateError{Op: "unbind", Site: s, Partner: t, Err: ErrNonReciprocal}
	}
	a.sites[s].Partner = NoSite
	a.sites[t].Partner = NoSite
	a.sites[s].Offset = 0
	a.sites[t].Offset = 0
	if o, ok := a.sites[s].Owner.(BindObserver); ok {
		o.OnUnbind(a.sites[s].Index)
	}
	if o, ok := a.sites[t].Owner.(BindObserver); ok {
		o.OnUnbind(a.sites[t].Index)
	}
	return nil
}

// CheckReciprocity verifies the link-symmetry invariant over the whole
// arena: every bound site's partner points back at it. Returns the first
// violation found.
func (a *Arena) CheckReciprocity() error {
	for id := range a.sites {
		p := a.sites[id].Partner
		if p == NoSite {
			continue
		}
		if !a.valid(p) || a.sites[p].Partner != SiteID(id) {
			return &BindingStateError{Op: "check", Site: SiteID(id), Partner: p, Err: ErrNonReciprocal}
		}
	}
	return nil
}
