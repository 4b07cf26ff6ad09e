// Package ofx imports OFX/QFX bank statements as expense and income entries.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/centsible/centsible/internal/model"
)

// Statement holds the entries extracted from one OFX file. Debits become
// expenses (absolute amount), credits become income with the transaction
// name as the source.
type Statement struct {
	Expenses []model.Expense
	Income   []model.Income
}

// Parser implements OFX/QFX file parsing.
type Parser struct {
	// DefaultCategory is assigned to imported expenses; OFX carries no
	// category information of its own.
	DefaultCategory string
}

// NewParser creates a new OFX parser.
func NewParser(defaultCategory string) *Parser {
	if defaultCategory == "" {
		defaultCategory = model.Uncategorized
	}
	return &Parser{DefaultCategory: defaultCategory}
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocess fixes common formatting issues in OFX files: leading blank
// lines, mixed-case SEVERITY values, and SGML-style tags missing their
// closing angle bracket.
func (p *Parser) preprocess(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)
	content = tagFixRegex.ReplaceAllString(content, "$1>")
	return content
}

// Parse reads an OFX/QFX document and splits its transactions into
// expenses and income.
func (p *Parser) Parse(reader io.Reader) (*Statement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocess(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	stmt := &Statement{}
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if bank, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if bank.BankTranList == nil {
				continue
			}
			for _, ofxTx := range bank.BankTranList.Transactions {
				p.convert(ofxTx, stmt)
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if cc, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if cc.BankTranList == nil {
				continue
			}
			for _, ofxTx := range cc.BankTranList.Transactions {
				p.convert(ofxTx, stmt)
			}
		}
	}

	slog.Info("parsed OFX file",
		"expenses", len(stmt.Expenses),
		"income", len(stmt.Income),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return stmt, nil
}

// convert maps one OFX transaction onto an expense or income entry.
// OFX uses negative amounts for debits.
func (p *Parser) convert(ofxTx ofxgo.Transaction, stmt *Statement) {
	amount, _ := ofxTx.TrnAmt.Float64()
	name := transactionName(ofxTx)

	if amount == 0 {
		return
	}

	if amount < 0 {
		stmt.Expenses = append(stmt.Expenses, model.Expense{
			Date:        ofxTx.DtPosted.Time,
			Category:    p.DefaultCategory,
			Amount:      -amount,
			Description: name,
		})
		return
	}

	stmt.Income = append(stmt.Income, model.Income{
		Date:        ofxTx.DtPosted.Time,
		Source:      name,
		Amount:      amount,
		Description: string(ofxTx.Memo),
	})
}

// transactionName picks the cleanest available description for an OFX
// transaction: PAYEE when present, then NAME, then MEMO.
func transactionName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	if name := strings.TrimSpace(string(tx.Name)); name != "" {
		return name
	}
	return strings.TrimSpace(string(tx.Memo))
}
