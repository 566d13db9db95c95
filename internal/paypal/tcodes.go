package paypal

// Transaction event code descriptions, taken from the provider's published
// t-code reference (https://developer.paypal.com/docs/reports/reference/tcodes/).
// The table is consumed for display and reporting only; import decisions
// never depend on it.

var creditTCodes = map[string]string{
	"T0000": "General Payment",
	"T0001": "Mass Pay Payment",
	"T0003": "Pre-approved Payment (BillUser API)",
	"T0006": "Express Checkout APIs",
	"T0007": "Website Payments Standard Payment",
	"T0011": "Mobile Payment",
	"T0013": "Donation Payment",
	"T0300": "General Funding of PayPal Account",
	"T0301": "PayPal Balance Manager Funding of PayPal Account",
	"T0302": "ACH Funding for Funds Recovery from Account Balance",
	"T0303": "Electronic Funds Transfer Funding",
	"T0500": "General PayPal Debit Card Transaction",
	"T0600": "General Credit Card Withdrawal",
	"T0700": "General Credit Card Deposit",
	"T0800": "General Bonus",
	"T0900": "General Incentive/Certificate Redemption",
	"T1000": "BillPay transaction",
	"T1100": "General Reversal",
	"T1101": "Reversal of ACH Withdrawal Transaction",
	"T1102": "Reversal of Debit Card Transaction",
	"T1104": "Reversal of ACH Deposit",
	"T1106": "Payment Reversal",
	"T1107": "Payment Refund",
	"T1110": "Hold on Balance for Dispute Investigation",
	"T1111": "Cancellation of Hold for Dispute Resolution",
	"T1114": "Mass Pay Reversal",
	"T1115": "Mass Pay Refund",
	"T1200": "General Account Adjustment",
	"T1201": "Chargeback",
	"T1202": "Chargeback Reversal",
	"T1205": "Reimbursement of Chargeback",
	"T1300": "General Authorizations",
	"T1301": "ReAuthorization",
	"T1302": "Void of Authorizations",
	"T1400": "General Dividend",
	"T1700": "General withdrawal to not bank entity",
	"T1900": "General Account Correction",
	"T2000": "General intraaccount transfer",
	"T2003": "Transfer To External GL Entity",
	"T9700": "Account Receivable for Shipping",
	"T9701": "Funds Payable",
	"T9702": "Funds Receivable",
}

var debitTCodes = map[string]string{
	"T0100": "General NonPayment Related Fee",
	"T0101": "Web Site Payment Pro Account Monthly Fee",
	"T0102": "Fee for Foreign ACH withdrawal",
	"T0103": "Fee for World Link Check withdrawal",
	"T0104": "Fee for Mass Pay request",
	"T0105": "Check withdrawal",
	"T0106": "Chargeback Fee",
	"T0107": "Payment Fee",
	"T0108": "ATM withdrawal",
	"T0109": "Auto-sweep from account",
	"T0110": "International CC withdrawal",
	"T0111": "Warranty Fee for warranty purchase",
	"T0112": "Gift Certificate Expiration Fee",
	"T0113": "Partner Fee",
	"T0114": "Dispute Fee",
	"T0115": "Custody Fee",
	"T0116": "Bank Return Fee",
	"T0117": "Campaign Fee",
	"T0400": "General Withdrawal from PayPal Account",
	"T0401": "AutoSweep",
	"T0501": "Virtual PayPal Debit Card Transaction",
	"T0502": "PayPal Debit Card Withdrawal to ATM",
	"T1106": "Payment Reversal",
	"T1108": "Fee Reversal",
	"T1109": "Fee Refund",
	"T1110": "Hold on Balance for Dispute Investigation",
	"T1200": "General Account Adjustment",
	"T1201": "Chargeback",
	"T1202": "Chargeback Reversal",
	"T1205": "Reimbursement of Chargeback",
	"T1300": "General Authorizations",
	"T1301": "ReAuthorization",
	"T1302": "Void of Authorizations",
	"T2002": "Withdraw funds to Partner Account",
	"T2114": "Tax hold",
	"T2301": "Tax withholding to IRS",
	"T9800": "Display only transaction row",
	"T9900": "Other",
}

// DescribeTCode looks up the human description for a transaction event
// code, preferring the credit table. It returns false when the code is
// unknown.
func DescribeTCode(code string) (string, bool) {
	if desc, ok := creditTCodes[code]; ok {
		return desc, true
	}
	if desc, ok := debitTCodes[code]; ok {
		return desc, true
	}
	return "", false
}
