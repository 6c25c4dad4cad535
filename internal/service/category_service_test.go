package service

import (
	"testing"

	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/util"
)

func newCatalogFixture() (*CategoryService, *fakeCategoryStore, *fakeQuestionStore) {
	cats := newFakeCategoryStore()
	qs := newFakeQuestionStore()
	return NewCategoryService(cats, qs, nil), cats, qs
}

func TestCreateCategoryDefaultsScale(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	list, err := svc.Create(CreateCategoryRequest{Name: "Math"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("list length = %d, want 1", len(list))
	}
	if list[0].Scale == nil || list[0].Scale.TotalMarks != model.DefaultScaleMarks {
		t.Fatalf("scale = %+v, want default %d", list[0].Scale, model.DefaultScaleMarks)
	}
}

func TestCreateCategoryExplicitScale(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	marks := 80
	list, err := svc.Create(CreateCategoryRequest{Name: "Math", ScaleMarks: &marks})
	if err != nil {
		t.Fatal(err)
	}
	if list[0].Scale.TotalMarks != 80 {
		t.Fatalf("scale marks = %d, want 80", list[0].Scale.TotalMarks)
	}
}

func TestCreateCategoryRejectsNonPositiveScale(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	zero := 0
	if _, err := svc.Create(CreateCategoryRequest{Name: "Math", ScaleMarks: &zero}); !util.IsInvalidInput(err) {
		t.Fatalf("want invalid input, got %v", err)
	}
}

func TestCreateCategoryCaseInsensitiveConflict(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	if _, err := svc.Create(CreateCategoryRequest{Name: "Math"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(CreateCategoryRequest{Name: "math"}); !util.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
	if _, err := svc.Create(CreateCategoryRequest{Name: "MATH"}); !util.IsConflict(err) {
		t.Fatalf("want conflict, got %v", err)
	}
}

func TestCreateCategoryReturnsFullList(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	if _, err := svc.Create(CreateCategoryRequest{Name: "Math"}); err != nil {
		t.Fatal(err)
	}
	list, err := svc.Create(CreateCategoryRequest{Name: "History"})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("list length = %d, want 2", len(list))
	}
}

func TestGetByNameNotFound(t *testing.T) {
	svc, _, _ := newCatalogFixture()

	if _, err := svc.GetByName("Ghost"); !util.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestUpdateScale(t *testing.T) {
	svc, cats, qs := newCatalogFixture()
	cat := seedCategory(cats, qs, "Math", 50, 0)

	if err := svc.UpdateScale(cat.ID, 0); !util.IsInvalidInput(err) {
		t.Fatalf("want invalid input for zero marks, got %v", err)
	}

	if err := svc.UpdateScale(cat.ID, 100); err != nil {
		t.Fatal(err)
	}
	scale, err := svc.Scale(cat.ID)
	if err != nil {
		t.Fatal(err)
	}
	if scale.TotalMarks != 100 {
		t.Fatalf("scale marks = %d, want 100", scale.TotalMarks)
	}

	if err := svc.UpdateScale(999, 100); !util.IsNotFound(err) {
		t.Fatalf("want not found for unknown category, got %v", err)
	}
}

func TestAvailabilityBoundary(t *testing.T) {
	svc, cats, qs := newCatalogFixture()
	nine := seedCategory(cats, qs, "Nine", 50, 9)
	ten := seedCategory(cats, qs, "Ten", 50, 10)

	if ok, _ := svc.Available(nine.ID); ok {
		t.Fatal("9 questions must not open the quiz")
	}
	if ok, _ := svc.Available(ten.ID); !ok {
		t.Fatal("10 questions must open the quiz")
	}
}
