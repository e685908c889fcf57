package metadata

import "testing"

// TestRegistry returns a small fixed registry for tests.
//
//	KE Kenya          Sub-Saharan Africa  Lower middle income  appendix_3
//	UG Uganda         Sub-Saharan Africa  Low income           appendix_3
//	ZA South Africa   Sub-Saharan Africa  Upper middle income
//	IN India          South Asia          Lower middle income  appendix_3
//	NP Nepal          South Asia          Lower middle income  appendix_3
//	US United States  North America       High income
func TestRegistry(t testing.TB) *Registry {
	t.Helper()
	r, err := NewRegistry([]Country{
		{Code: "KE", Name: "Kenya", Region: "Sub-Saharan Africa", Income: "Lower middle income", Appendix3: true},
		{Code: "UG", Name: "Uganda", Region: "Sub-Saharan Africa", Income: "Low income", Appendix3: true},
		{Code: "ZA", Name: "South Africa", Region: "Sub-Saharan Africa", Income: "Upper middle income"},
		{Code: "IN", Name: "India", Region: "South Asia", Income: "Lower middle income", Appendix3: true},
		{Code: "NP", Name: "Nepal", Region: "South Asia", Income: "Lower middle income", Appendix3: true},
		{Code: "US", Name: "United States", Region: "North America", Income: "High income"},
	})
	if err != nil {
		t.Fatalf("building test registry: %v", err)
	}
	return r
}
