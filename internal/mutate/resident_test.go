package mutate

import (
	"errors"
	"testing"

	"memopad/internal/model"
)

func workDoc(t *testing.T) (*model.Document, string) {
	t.Helper()
	doc := model.NewDocument()
	if _, err := AddCategory(doc, "Work"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	res, err := AddResident(doc, "Work", "Report", "<p>draft</p>")
	if err != nil {
		t.Fatalf("AddResident: %v", err)
	}
	return doc, res.Item.ID
}

func TestAddResidentUnknownCategory(t *testing.T) {
	doc := model.NewDocument()
	var nf NotFoundError
	if _, err := AddResident(doc, "Work", "Report", ""); !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestArchiveAndRestoreResident(t *testing.T) {
	doc, id := workDoc(t)

	if _, err := ArchiveResident(doc, "Work", id); err != nil {
		t.Fatalf("ArchiveResident: %v", err)
	}
	work := doc.Categories["Work"]
	if len(work.Items) != 0 || len(work.Archive) != 1 {
		t.Fatalf("items=%d archive=%d", len(work.Items), len(work.Archive))
	}
	entry := work.Archive[0]
	if entry.OriginalCategory != "Work" || entry.ArchivedAt == 0 {
		t.Fatalf("entry = %+v", entry)
	}

	res, err := RestoreResidentArchive(doc, id)
	if err != nil {
		t.Fatalf("RestoreResidentArchive: %v", err)
	}
	if len(work.Archive) != 0 || len(work.Items) != 1 {
		t.Fatal("restore did not move the entry back")
	}
	if res.Item.ID != id || res.Item.HTML != "<p>draft</p>" {
		t.Fatalf("restored = %+v", res.Item)
	}
}

func TestRestoreAfterCategoryDeleted(t *testing.T) {
	doc, id := workDoc(t)
	AddCategory(doc, "Home")
	if _, err := ArchiveResident(doc, "Work", id); err != nil {
		t.Fatalf("ArchiveResident: %v", err)
	}

	// Move the archived entry so it survives the category delete, then
	// drop its original home.
	entry := doc.Categories["Work"].Archive[0]
	doc.Categories["Work"].Archive = nil
	home := doc.Categories["Home"]
	home.Archive = append(home.Archive, entry)
	if _, err := DeleteCategory(doc, "Work"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	if _, err := RestoreResidentArchive(doc, id); !errors.Is(err, ErrCategoryVanished) {
		t.Fatalf("err = %v, want ErrCategoryVanished", err)
	}
	if len(home.Archive) != 1 {
		t.Fatal("failed restore must leave the entry archived")
	}
}

func TestRenameCategoryRewritesArchiveStamps(t *testing.T) {
	doc, id := workDoc(t)
	if _, err := ArchiveResident(doc, "Work", id); err != nil {
		t.Fatalf("ArchiveResident: %v", err)
	}

	if _, err := RenameCategory(doc, "Work", "Office"); err != nil {
		t.Fatalf("RenameCategory: %v", err)
	}
	if doc.Categories["Work"] != nil {
		t.Fatal("old name still present")
	}
	entry := doc.Categories["Office"].Archive[0]
	if entry.OriginalCategory != "Office" {
		t.Fatalf("original_category = %q after rename", entry.OriginalCategory)
	}

	res, err := RestoreResidentArchive(doc, id)
	if err != nil {
		t.Fatalf("restore after rename: %v", err)
	}
	if res.Item.ID != id || len(doc.Categories["Office"].Items) != 1 {
		t.Fatal("restore did not land in the renamed category")
	}
}

func TestCategoryNameRules(t *testing.T) {
	doc := model.NewDocument()
	if _, err := AddCategory(doc, model.ArchiveCategoryName); !errors.Is(err, ErrReservedName) {
		t.Fatalf("reserved name err = %v", err)
	}
	if _, err := AddCategory(doc, "Work"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	var exists CategoryExistsError
	if _, err := AddCategory(doc, "Work"); !errors.As(err, &exists) {
		t.Fatalf("duplicate err = %v", err)
	}
	AddCategory(doc, "Home")
	if _, err := RenameCategory(doc, "Home", "Work"); !errors.As(err, &exists) {
		t.Fatalf("rename collision err = %v", err)
	}
}

func TestDeleteResidentArchiveAndEdit(t *testing.T) {
	doc, id := workDoc(t)
	ArchiveResident(doc, "Work", id)

	if _, err := EditResidentArchive(doc, id, "Report v2", ""); err != nil {
		t.Fatalf("EditResidentArchive: %v", err)
	}
	if doc.Categories["Work"].Archive[0].Title != "Report v2" {
		t.Fatal("edit did not stick")
	}

	if _, err := DeleteResidentArchive(doc, id); err != nil {
		t.Fatalf("DeleteResidentArchive: %v", err)
	}
	if len(doc.Categories["Work"].Archive) != 0 {
		t.Fatal("entry still archived after delete")
	}
}
