package permission

// Grant is anything that carries a permission mask of scope M, typically a
// role row loaded from storage.
type Grant[M Mask] interface {
	PermissionMask() M
}

// Aggregate ORs the masks of all roles. An empty list yields 0.
func Aggregate[M Mask, R Grant[M]](roles []R) M {
	var agg M
	for _, r := range roles {
		agg |= r.PermissionMask()
	}
	return agg
}

// IsAuthorized reports whether the union of the roles' masks contains every
// bit of required. A zero requirement is always satisfied.
//
// It has no side effects and never fails; the caller must reject the
// request when it returns false.
func IsAuthorized[M Mask, R Grant[M]](roles []R, required M) bool {
	return Aggregate[M](roles)&required == required
}
