package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/gophcatalog/internal/client/models"
	"github.com/go-playground/validator/v10"
)

var errNothingToUpdate = errors.New("nothing to update")

// productForm is the raw user input of the add and update commands.
type productForm struct {
	Title       string
	Description string
	Category    string
	Brand       string
	Price       string `validate:"omitempty,numeric"`
	Discount    string `validate:"omitempty,numeric"`
	Stock       string `validate:"omitempty,number"`
}

var formValidator = validator.New()

func (f productForm) payload() (models.ProductPayload, error) {
	if err := formValidator.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return models.ProductPayload{}, fmt.Errorf("%s is not a valid number", strings.ToLower(verrs[0].Field()))
		}
		return models.ProductPayload{}, err
	}

	p := models.ProductPayload{
		Title:       f.Title,
		Description: f.Description,
		Category:    f.Category,
		Brand:       f.Brand,
	}
	if f.Price != "" {
		v, err := strconv.ParseFloat(f.Price, 64)
		if err != nil {
			return p, fmt.Errorf("price must be a number")
		}
		p.Price = &v
	}
	if f.Discount != "" {
		v, err := strconv.ParseFloat(f.Discount, 64)
		if err != nil {
			return p, fmt.Errorf("discount must be a number")
		}
		p.DiscountPercentage = &v
	}
	if f.Stock != "" {
		v, err := strconv.Atoi(f.Stock)
		if err != nil {
			return p, fmt.Errorf("stock must be a whole number")
		}
		p.Stock = &v
	}
	return p, nil
}

func (f productForm) empty() bool {
	return f == productForm{}
}

// readForm prompts for every field. hint is appended to each prompt.
func (a *App) readForm(hint string) (productForm, error) {
	var f productForm
	fields := []struct {
		label string
		dst   *string
	}{
		{"Title", &f.Title},
		{"Description", &f.Description},
		{"Category", &f.Category},
		{"Brand", &f.Brand},
		{"Price", &f.Price},
		{"Discount percentage", &f.Discount},
		{"Stock", &f.Stock},
	}
	for _, fld := range fields {
		v, err := getSimpleText(a.reader, fld.label+hint, a.out)
		if err != nil {
			return f, err
		}
		*fld.dst = v
	}
	return f, nil
}

// List fetches the whole catalog and prints it.
func (a *App) List(ctx context.Context) error {
	a.catalog.FetchProducts(ctx)

	st := a.catalog.Snapshot()
	if st.Error != "" {
		fmt.Fprintf(a.out, "Error: %s\n", st.Error)
	}
	printProducts(a.out, st.Products)
	return nil
}

func (a *App) Search(ctx context.Context, query string) error {
	products, err := a.catalog.SearchProducts(ctx, query)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	printProducts(a.out, products)
	return nil
}

// Show prints a single product, from the local collection when cached.
func (a *App) Show(ctx context.Context, id string) error {
	p, err := a.catalog.FetchProductByID(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	printProduct(a.out, p)
	return nil
}

// Add prompts for a new product and creates it. Title is required.
func (a *App) Add(ctx context.Context) error {
	a.catalog.FetchCategories(ctx)
	if cats := a.catalog.Snapshot().Categories; len(cats) > 0 {
		fmt.Fprintf(a.out, "Categories: %s\n", categoryList(cats))
	}

	f, err := a.readForm("")
	if err != nil {
		return err
	}
	if f.Title == "" {
		fmt.Fprintln(a.out, "Error: title is required")
		return errors.New("title is required")
	}
	payload, err := f.payload()
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	created, err := a.catalog.AddNewProduct(ctx, payload)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Created product %d: %s\n", created.ID, created.Title)
	return nil
}

// Update prompts for changed fields; blank answers keep the current value.
func (a *App) Update(ctx context.Context, id string) error {
	f, err := a.readForm(" (blank keeps current)")
	if err != nil {
		return err
	}
	if f.empty() {
		fmt.Fprintln(a.out, "Nothing to update")
		return errNothingToUpdate
	}
	payload, err := f.payload()
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	updated, err := a.catalog.UpdateExistingProduct(ctx, id, payload)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Updated product %d: %s\n", updated.ID, updated.Title)
	return nil
}

// Delete asks for confirmation and deletes the product.
func (a *App) Delete(ctx context.Context, id string) error {
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete product %s?", id), a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.catalog.DeleteExistingProduct(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Deleted product %s\n", id)
	return nil
}

func (a *App) Categories(ctx context.Context) error {
	a.catalog.FetchCategories(ctx)

	st := a.catalog.Snapshot()
	if st.Error != "" {
		fmt.Fprintf(a.out, "Error: %s\n", st.Error)
	}
	for _, c := range st.Categories {
		fmt.Fprintf(a.out, "%s\t%s\n", c.Slug, c.Name)
	}
	return nil
}

func categoryList(cats []models.Category) string {
	slugs := make([]string, len(cats))
	for i, c := range cats {
		slugs[i] = c.Slug
	}
	return strings.Join(slugs, ", ")
}

func printProducts(w io.Writer, products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%d\n", p.ID, p.Title, p.Category, p.Price, p.Stock)
	}
	_ = tw.Flush()
}

func printProduct(w io.Writer, p *models.Product) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", p.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", p.Title)
	if p.Description != "" {
		fmt.Fprintf(tw, "Description:\t%s\n", p.Description)
	}
	fmt.Fprintf(tw, "Category:\t%s\n", p.Category)
	if p.Brand != "" {
		fmt.Fprintf(tw, "Brand:\t%s\n", p.Brand)
	}
	fmt.Fprintf(tw, "Price:\t%.2f\n", p.Price)
	if p.DiscountPercentage != 0 {
		fmt.Fprintf(tw, "Discount:\t%.2f%%\n", p.DiscountPercentage)
	}
	fmt.Fprintf(tw, "Rating:\t%.2f\n", p.Rating)
	fmt.Fprintf(tw, "Stock:\t%d\n", p.Stock)

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s:\t%s\n", k, truncate(string(p.Extra[k]), 60))
	}
	_ = tw.Flush()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
