package metadata

import "time"

// Released reports whether an episode with the given release date is public
// at now. A nil release date is always public. Comparison happens at day
// granularity on calendar components: an episode goes live at local midnight
// on its release day, so Released(d, n) stays true for every later n.
func Released(release *time.Time, now time.Time) bool {
	if release == nil {
		return true
	}
	ry, rm, rd := release.Date()
	ny, nm, nd := now.Date()
	if ry != ny {
		return ry < ny
	}
	if rm != nm {
		return rm < nm
	}
	return rd <= nd
}
