package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"catalog-backend/internal/domains/author/model"
	bookModel "catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/shared/utils"
)

const (
	authorsSheet = "Authors"
	booksSheet   = "Books"
)

// ExportToExcel builds a workbook with one sheet of authors and one of books.
func (s *authorService) ExportToExcel(ctx context.Context) (*excelize.File, error) {
	authors, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	books, err := s.books.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	f, err := buildCatalogWorkbook(authors, books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	return f, nil
}

func buildCatalogWorkbook(authors []model.Author, books []bookModel.Book) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename default sheet
	if err := f.SetSheetName("Sheet1", authorsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(booksSheet); err != nil {
		return nil, err
	}

	authorRows := make([][]interface{}, 0, len(authors))
	names := make(map[int64]string, len(authors))
	for _, a := range authors {
		names[a.ID] = a.Name
		authorRows = append(authorRows, []interface{}{
			a.ID,
			a.Name,
			a.Slug,
			utils.Deref(a.Country),
			utils.Deref(a.BirthDate),
			utils.Deref(a.Biography),
			a.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	bookRows := make([][]interface{}, 0, len(books))
	for _, b := range books {
		year := ""
		if b.Year != nil {
			year = strconv.Itoa(*b.Year)
		}
		bookRows = append(bookRows, []interface{}{
			b.ID,
			b.Title,
			b.Slug,
			b.AuthorID,
			names[b.AuthorID],
			year,
			utils.Deref(b.ISBN),
			utils.Deref(b.Resume),
		})
	}

	if err := writeSheet(f, authorsSheet,
		[]string{"ID", "Name", "Slug", "Country", "Birth Date", "Biography", "Created At"},
		authorRows,
	); err != nil {
		return nil, err
	}
	if err := writeSheet(f, booksSheet,
		[]string{"ID", "Title", "Slug", "Author ID", "Author", "Year", "ISBN", "Resume"},
		bookRows,
	); err != nil {
		return nil, err
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}) error {
	// Row 1: Header
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	// Header in đậm
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	// Data rows, bắt đầu từ row 2
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
