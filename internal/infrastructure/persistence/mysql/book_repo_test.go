package mysql_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql/mysqltest"
	"github.com/xiebiao/bookshop/pkg/specification"
)

type catalogFixture struct {
	db         *gorm.DB
	books      book.Repository
	categories category.Repository
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	db := mysqltest.Open(t)
	builder, err := mysql.NewBookSpecificationBuilder()
	require.NoError(t, err)
	return &catalogFixture{
		db:         db,
		books:      mysql.NewBookRepository(db, builder),
		categories: mysql.NewCategoryRepository(db),
	}
}

func (f *catalogFixture) category(t *testing.T, name string) *category.Category {
	t.Helper()
	c, err := category.NewCategory(name, "")
	require.NoError(t, err)
	require.NoError(t, f.categories.Create(context.Background(), c))
	return c
}

func (f *catalogFixture) book(t *testing.T, title, author, isbn, price string, categoryIDs ...uint) *book.Book {
	t.Helper()
	b, err := book.NewBook(title, author, isbn, decimal.RequireFromString(price), "", "", categoryIDs)
	require.NoError(t, err)
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func titles(books []*book.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestBookRepository_CreateAndFind(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	scifi := f.category(t, "SciFi")
	classic := f.category(t, "Classic")

	created := f.book(t, "Dune", "Frank Herbert", "978-0-441-17271-9", "9.99", classic.ID, scifi.ID)
	require.NotZero(t, created.ID)

	got, err := f.books.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "9780441172719", got.ISBN)
	assert.True(t, decimal.RequireFromString("9.99").Equal(got.Price))
	assert.ElementsMatch(t, []uint{scifi.ID, classic.ID}, got.CategoryIDs)

	_, err = f.books.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestBookRepository_DuplicateISBN(t *testing.T) {
	f := newCatalogFixture(t)
	f.book(t, "Dune", "Frank Herbert", "9780441172719", "9.99")

	b, err := book.NewBook("Dune II", "Frank Herbert", "9780441172719", decimal.NewFromInt(5), "", "", nil)
	require.NoError(t, err)
	assert.ErrorIs(t, f.books.Create(context.Background(), b), book.ErrISBNDuplicate)
}

func TestBookRepository_UpdateReplacesCategories(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	a := f.category(t, "A")
	bCat := f.category(t, "B")
	created := f.book(t, "Dune", "Frank Herbert", "9780441172719", "9.99", a.ID)

	require.NoError(t, created.Update("Dune", "Frank Herbert", "9780441172719", decimal.RequireFromString("12.50"), "desc", "", []uint{bCat.ID}))
	require.NoError(t, f.books.Update(ctx, created))

	got, err := f.books.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bCat.ID}, got.CategoryIDs)
	assert.Equal(t, "12.50", got.Price.StringFixed(2))
	assert.Equal(t, "desc", got.Description)

	missing := *created
	missing.ID = 9999
	assert.ErrorIs(t, f.books.Update(ctx, &missing), book.ErrBookNotFound)
}

func TestBookRepository_Delete(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	c := f.category(t, "A")
	created := f.book(t, "Dune", "Frank Herbert", "9780441172719", "9.99", c.ID)

	require.NoError(t, f.books.Delete(ctx, created.ID))

	_, err := f.books.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
	assert.ErrorIs(t, f.books.Delete(ctx, created.ID), book.ErrBookNotFound)

	books, total, err := f.books.ListByCategory(ctx, c.ID, book.ListParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, books)
}

func TestBookRepository_ListSortAndPage(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	f.book(t, "C", "x", "0000000003", "30")
	f.book(t, "A", "x", "0000000001", "10")
	f.book(t, "B", "x", "0000000002", "20")

	books, total, err := f.books.List(ctx, book.ListParams{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []string{"A", "B"}, titles(books))

	books, _, err = f.books.List(ctx, book.ListParams{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, titles(books))

	books, _, err = f.books.List(ctx, book.ListParams{SortBy: book.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "B", "A"}, titles(books))
}

func TestBookRepository_Search(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	scifi := f.category(t, "SciFi")
	fantasy := f.category(t, "Fantasy")

	f.book(t, "Dune", "Frank Herbert", "0000000001", "9.99", scifi.ID)
	f.book(t, "Children of Dune", "Frank Herbert", "0000000002", "8.99", scifi.ID)
	f.book(t, "The Hobbit", "J.R.R. Tolkien", "0000000003", "7.99", fantasy.ID)
	f.book(t, "Foundation", "Isaac Asimov", "0000000004", "6.99", scifi.ID)

	cases := []struct {
		name    string
		filters book.SearchFilters
		want    []string
	}{
		{"empty filters return everything", book.SearchFilters{}, []string{"Children of Dune", "Dune", "Foundation", "The Hobbit"}},
		{"single field", book.SearchFilters{"author": {"Frank Herbert"}}, []string{"Children of Dune", "Dune"}},
		{"or within field", book.SearchFilters{"title": {"Dune", "The Hobbit"}}, []string{"Dune", "The Hobbit"}},
		{"and across fields", book.SearchFilters{"author": {"Frank Herbert"}, "title": {"Dune", "Foundation"}}, []string{"Dune"}},
		{"blank values ignored", book.SearchFilters{"author": {" ", ""}, "title": {"Dune"}}, []string{"Dune"}},
		{"category", book.SearchFilters{"category_id": {fmt.Sprint(fantasy.ID)}}, []string{"The Hobbit"}},
		{"category and author", book.SearchFilters{"category_id": {fmt.Sprint(scifi.ID), fmt.Sprint(fantasy.ID)}, "author": {"Isaac Asimov", "J.R.R. Tolkien"}}, []string{"Foundation", "The Hobbit"}},
		{"invalid category matches nothing", book.SearchFilters{"category_id": {"abc"}}, []string{}},
		{"isbn normalized", book.SearchFilters{"isbn": {"000-000-000-4"}}, []string{"Foundation"}},
		{"no match", book.SearchFilters{"title": {"Missing"}}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			books, total, err := f.books.Search(ctx, tc.filters, book.ListParams{})
			require.NoError(t, err)
			assert.Equal(t, tc.want, titles(books))
			assert.EqualValues(t, len(tc.want), total)
		})
	}
}

func TestBookRepository_SearchUnknownField(t *testing.T) {
	f := newCatalogFixture(t)

	_, _, err := f.books.Search(context.Background(), book.SearchFilters{"publisher": {"Ace"}}, book.ListParams{})
	require.Error(t, err)
	assert.ErrorIs(t, err, specification.ErrProviderNotFound)
}

func TestBookRepository_FindByIDs(t *testing.T) {
	f := newCatalogFixture(t)
	a := f.book(t, "A", "x", "0000000001", "10")
	b := f.book(t, "B", "x", "0000000002", "20")

	found, err := f.books.FindByIDs(context.Background(), []uint{a.ID, b.ID, a.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Equal(t, "B", found[b.ID].Title)

	empty, err := f.books.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
