package soccer

// OwnerToken is the single shared arbiter of ball ownership. At most one
// player holds it; acquiring fails while another player holds it.
type OwnerToken struct {
	holder *Player
}

// Acquire gives the token to p if it is free or already p's.
func (t *OwnerToken) Acquire(p *Player) bool {
	if p == nil {
		return false
	}
	if t.holder != nil && t.holder != p {
		return false
	}
	t.holder = p
	return true
}

// Release frees the token if p holds it.
func (t *OwnerToken) Release(p *Player) bool {
	if p == nil || t.holder != p {
		return false
	}
	t.holder = nil
	return true
}

// Holder returns the current holder or nil.
func (t *OwnerToken) Holder() *Player {
	return t.holder
}

// Held reports whether anyone holds the ball.
func (t *OwnerToken) Held() bool {
	return t.holder != nil
}

// HeldByOther reports whether someone other than p holds the ball.
func (t *OwnerToken) HeldByOther(p *Player) bool {
	return t.holder != nil && t.holder != p
}
