package defaults

import "testing"

func TestEnumDomains(t *testing.T) {
	if len(RankNames) != 5 {
		t.Fatalf("RankNames len=%d, want 5", len(RankNames))
	}
	if RankNames[len(RankNames)-1] != "Kingpin" {
		t.Fatalf("top rank=%q, want Kingpin", RankNames[len(RankNames)-1])
	}
	if len(QualityNames) != 5 || QualityNames[len(QualityNames)-1] != "Heavenly" {
		t.Fatalf("QualityNames unexpected: %v", QualityNames)
	}
	if PackagingNames[0] != "none" {
		t.Fatalf("PackagingNames[0]=%q, want none", PackagingNames[0])
	}
}

func TestTemplates(t *testing.T) {
	p := ProductManagerTemplate()
	for _, key := range []string{"DiscoveredProducts", "ListedProducts", "MixRecipes", "ProductPrices"} {
		if _, ok := p[key]; !ok {
			t.Fatalf("ProductManagerTemplate missing %q", key)
		}
	}

	o := OwnershipTemplate("BusinessData", "laundromat")
	if o["DataType"] != "BusinessData" || o["PropertyCode"] != "laundromat" {
		t.Fatalf("OwnershipTemplate unexpected: %v", o)
	}
	if owned, _ := o["IsOwned"].(bool); !owned {
		t.Fatal("OwnershipTemplate must mark IsOwned")
	}

	r := RelationshipTemplate()
	if r["RelationDelta"] != 999 {
		t.Fatalf("RelationDelta=%v, want 999", r["RelationDelta"])
	}
}
