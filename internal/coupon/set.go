package coupon

// mapCouponSet implements CouponSet using a map for O(1) lookups.
type mapCouponSet struct {
	coupons map[string]int
}

// NewMapCouponSet creates a new map-based coupon set.
func NewMapCouponSet(capacity int) CouponSet {
	return &mapCouponSet{
		coupons: make(map[string]int, capacity),
	}
}

// Lookup returns the discount percent for a code, if present.
func (s *mapCouponSet) Lookup(code string) (int, bool) {
	percent, exists := s.coupons[code]
	return percent, exists
}

// Size returns the number of coupons in the set.
func (s *mapCouponSet) Size() int {
	return len(s.coupons)
}

// Add adds a coupon code with its discount percent to the set.
func (s *mapCouponSet) Add(code string, percent int) {
	s.coupons[code] = percent
}
