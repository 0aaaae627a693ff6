package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/Max-Ratcliff/ShelfMates/models"
	"github.com/Max-Ratcliff/ShelfMates/utils"
	"github.com/xuri/excelize/v2"
)

// ExcelService handles Excel export of a household's ledger
type ExcelService struct {
	householdService *HouseholdService
	expenseService   *ExpenseService
	balanceService   *BalanceService
	paymentService   *PaymentService
}

// NewExcelService creates a new Excel service
func NewExcelService(householdService *HouseholdService, expenseService *ExpenseService, balanceService *BalanceService, paymentService *PaymentService) *ExcelService {
	return &ExcelService{
		householdService: householdService,
		expenseService:   expenseService,
		balanceService:   balanceService,
		paymentService:   paymentService,
	}
}

// ExportHouseholdToExcel generates an Excel file for a household's ledger
func (s *ExcelService) ExportHouseholdToExcel(householdID string) (*excelize.File, string, error) {
	household, err := s.householdService.GetHousehold(householdID)
	if err != nil {
		return nil, "", err
	}

	expenses, err := s.expenseService.ListExpenses(householdID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get expenses: %v", err)
	}

	balanceResult, err := s.balanceService.ComputeBalances(householdID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to compute balances: %v", err)
	}

	payments, err := s.paymentService.ListPayments(householdID)
	if err != nil {
		// If payments cannot be loaded the export still makes sense
		payments = []models.Payment{}
	}

	f := excelize.NewFile()

	if err := s.createSummarySheet(f, balanceResult); err != nil {
		return nil, "", fmt.Errorf("failed to create summary sheet: %v", err)
	}
	if err := s.createExpenseSheet(f, expenses); err != nil {
		return nil, "", fmt.Errorf("failed to create expense sheet: %v", err)
	}
	if err := s.createPaymentSheet(f, payments); err != nil {
		return nil, "", fmt.Errorf("failed to create payment sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := fmt.Sprintf("%s_Ledger_%s.xlsx",
		household.Name,
		time.Now().Format("2006-01-02"))

	return f, filename, nil
}

// createSummarySheet creates Sheet 1: member balances and suggested transfers
func (s *ExcelService) createSummarySheet(f *excelize.File, result *models.BalanceResult) error {
	sheetName := "Summary"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})

	headers := []string{"Member", "Owed", "Owes", "Net"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", "D1", headerStyle)

	var userIDs []string
	for userID := range result.Balances {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	for i, userID := range userIDs {
		balance := result.Balances[userID]
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), userID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), utils.FormatCents(balance.OwedCents))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), utils.FormatCents(balance.OwesCents))
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), utils.FormatCents(balance.NetCents))
	}

	transfersStartRow := len(userIDs) + 4
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", transfersStartRow), "Suggested Transfers:")

	transfersStartRow++
	transferHeaders := []string{"From", "To", "Amount"}
	for i, header := range transferHeaders {
		cell := fmt.Sprintf("%s%d", string(rune('A'+i)), transfersStartRow)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", transfersStartRow), fmt.Sprintf("C%d", transfersStartRow), headerStyle)

	for i, transfer := range result.Transfers {
		row := transfersStartRow + 1 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), transfer.From)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), transfer.To)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), utils.FormatCents(transfer.AmountCents))
	}

	f.SetColWidth(sheetName, "A", "D", 15)
	return nil
}

// createExpenseSheet creates Sheet 2: per-expense matrix with one column per member
func (s *ExcelService) createExpenseSheet(f *excelize.File, expenses []*models.Expense) error {
	sheetName := "Expenses"
	f.NewSheet(sheetName)

	memberSet := make(map[string]bool)
	for _, expense := range expenses {
		for _, entry := range expense.Entries {
			memberSet[entry.UserID] = true
		}
	}
	var members []string
	for userID := range memberSet {
		members = append(members, userID)
	}
	sort.Strings(members)

	headers := []string{"Date", "Note", "Method", "Payer", "Status", "Total"}
	headers = append(headers, members...)
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", lastHeader, headerStyle)

	for rowIdx, expense := range expenses {
		row := rowIdx + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), expense.CreatedAt.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), expense.Note)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), expense.Method)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), expense.PayerID)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), expense.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), utils.FormatCents(expense.TotalCents))

		for colIdx, member := range members {
			entry := expense.EntryFor(member)
			if entry == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+7, row)
			f.SetCellValue(sheetName, cell, utils.FormatCents(entry.AmountCents))
		}
	}

	f.SetColWidth(sheetName, "A", "F", 14)
	return nil
}

// createPaymentSheet creates Sheet 3: recorded payments
func (s *ExcelService) createPaymentSheet(f *excelize.File, payments []models.Payment) error {
	sheetName := "Payments"
	f.NewSheet(sheetName)

	headers := []string{"Date", "From", "To", "Amount", "Status", "Applications", "Note"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", "G1", headerStyle)

	for i, payment := range payments {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), payment.CreatedAt.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), payment.FromUser)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), payment.ToUser)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), utils.FormatCents(payment.TotalCents))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), payment.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), len(payment.AppliesTo))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), payment.Note)
	}

	f.SetColWidth(sheetName, "A", "G", 14)
	return nil
}
