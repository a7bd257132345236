package vietqr

import (
	"sort"
	"strings"
)

// Bank is a NAPAS member bank that can receive VietQR transfers.
type Bank struct {
	BIN       string `json:"bin"`
	Code      string `json:"code"`
	ShortName string `json:"short_name"`
	Name      string `json:"name"`
}

// DefaultBankBIN is BIDV, used when a caller does not pick a bank.
const DefaultBankBIN = "970418"

var banks = []Bank{
	{BIN: "970405", Code: "VBA", ShortName: "Agribank", Name: "Ngân hàng Nông nghiệp và Phát triển Nông thôn Việt Nam"},
	{BIN: "970415", Code: "ICB", ShortName: "VietinBank", Name: "Ngân hàng TMCP Công thương Việt Nam"},
	{BIN: "970418", Code: "BIDV", ShortName: "BIDV", Name: "Ngân hàng TMCP Đầu tư và Phát triển Việt Nam"},
	{BIN: "970436", Code: "VCB", ShortName: "Vietcombank", Name: "Ngân hàng TMCP Ngoại Thương Việt Nam"},
	{BIN: "970422", Code: "MB", ShortName: "MBBank", Name: "Ngân hàng TMCP Quân đội"},
	{BIN: "970407", Code: "TCB", ShortName: "Techcombank", Name: "Ngân hàng TMCP Kỹ thương Việt Nam"},
	{BIN: "970416", Code: "ACB", ShortName: "ACB", Name: "Ngân hàng TMCP Á Châu"},
	{BIN: "970432", Code: "VPB", ShortName: "VPBank", Name: "Ngân hàng TMCP Việt Nam Thịnh Vượng"},
	{BIN: "970423", Code: "TPB", ShortName: "TPBank", Name: "Ngân hàng TMCP Tiên Phong"},
	{BIN: "970403", Code: "STB", ShortName: "Sacombank", Name: "Ngân hàng TMCP Sài Gòn Thương Tín"},
	{BIN: "970437", Code: "HDB", ShortName: "HDBank", Name: "Ngân hàng TMCP Phát triển Thành phố Hồ Chí Minh"},
	{BIN: "970441", Code: "VIB", ShortName: "VIB", Name: "Ngân hàng TMCP Quốc tế Việt Nam"},
	{BIN: "970443", Code: "SHB", ShortName: "SHB", Name: "Ngân hàng TMCP Sài Gòn - Hà Nội"},
	{BIN: "970431", Code: "EIB", ShortName: "Eximbank", Name: "Ngân hàng TMCP Xuất Nhập khẩu Việt Nam"},
	{BIN: "970426", Code: "MSB", ShortName: "MSB", Name: "Ngân hàng TMCP Hàng Hải"},
	{BIN: "970448", Code: "OCB", ShortName: "OCB", Name: "Ngân hàng TMCP Phương Đông"},
	{BIN: "970429", Code: "SCB", ShortName: "SCB", Name: "Ngân hàng TMCP Sài Gòn"},
	{BIN: "970440", Code: "SEAB", ShortName: "SeABank", Name: "Ngân hàng TMCP Đông Nam Á"},
	{BIN: "970425", Code: "ABB", ShortName: "ABBANK", Name: "Ngân hàng TMCP An Bình"},
	{BIN: "970454", Code: "VCCB", ShortName: "VietCapitalBank", Name: "Ngân hàng TMCP Bản Việt"},
	{BIN: "970449", Code: "LPB", ShortName: "LPBank", Name: "Ngân hàng TMCP Lộc Phát Việt Nam"},
	{BIN: "970428", Code: "NAB", ShortName: "NamABank", Name: "Ngân hàng TMCP Nam Á"},
	{BIN: "970409", Code: "BAB", ShortName: "BacABank", Name: "Ngân hàng TMCP Bắc Á"},
	{BIN: "970412", Code: "PVCB", ShortName: "PVcomBank", Name: "Ngân hàng TMCP Đại Chúng Việt Nam"},
	{BIN: "970427", Code: "VAB", ShortName: "VietABank", Name: "Ngân hàng TMCP Việt Á"},
	{BIN: "970419", Code: "NCB", ShortName: "NCB", Name: "Ngân hàng TMCP Quốc Dân"},
	{BIN: "970438", Code: "BVB", ShortName: "BaoVietBank", Name: "Ngân hàng TMCP Bảo Việt"},
	{BIN: "970430", Code: "PGB", ShortName: "PGBank", Name: "Ngân hàng TMCP Thịnh vượng và Phát triển"},
	{BIN: "970452", Code: "KLB", ShortName: "KienLongBank", Name: "Ngân hàng TMCP Kiên Long"},
	{BIN: "970400", Code: "SGICB", ShortName: "SaigonBank", Name: "Ngân hàng TMCP Sài Gòn Công Thương"},
	{BIN: "970433", Code: "VIETBANK", ShortName: "VietBank", Name: "Ngân hàng TMCP Việt Nam Thương Tín"},
	{BIN: "970408", Code: "GPB", ShortName: "GPBank", Name: "Ngân hàng Thương mại TNHH MTV Dầu Khí Toàn Cầu"},
	{BIN: "970424", Code: "SHBVN", ShortName: "ShinhanBank", Name: "Ngân hàng TNHH MTV Shinhan Việt Nam"},
	{BIN: "970458", Code: "UOB", ShortName: "UnitedOverseas", Name: "Ngân hàng United Overseas - Chi nhánh TP. Hồ Chí Minh"},
	{BIN: "970457", Code: "WVN", ShortName: "Woori", Name: "Ngân hàng TNHH MTV Woori Việt Nam"},
	{BIN: "970421", Code: "VRB", ShortName: "VRB", Name: "Ngân hàng Liên doanh Việt - Nga"},
}

var (
	banksByBIN  = make(map[string]Bank, len(banks))
	banksByCode = make(map[string]Bank, len(banks))
	sortedBanks []Bank
)

func init() {
	for _, b := range banks {
		banksByBIN[b.BIN] = b
		banksByCode[strings.ToUpper(b.Code)] = b
		banksByCode[strings.ToUpper(b.ShortName)] = b
	}

	sortedBanks = make([]Bank, len(banks))
	copy(sortedBanks, banks)
	sort.Slice(sortedBanks, func(i, j int) bool {
		return strings.ToLower(sortedBanks[i].ShortName) < strings.ToLower(sortedBanks[j].ShortName)
	})
}

// LookupBank finds a bank by its 6-digit BIN.
func LookupBank(bin string) (Bank, bool) {
	b, ok := banksByBIN[bin]
	return b, ok
}

// LookupBankByCode finds a bank by its short code or short name, ignoring case.
func LookupBankByCode(code string) (Bank, bool) {
	b, ok := banksByCode[strings.ToUpper(strings.TrimSpace(code))]
	return b, ok
}

// ResolveBankBIN accepts either a BIN or a bank code and returns the BIN.
// Unknown 6-digit values are passed through, since the directory is not
// exhaustive.
func ResolveBankBIN(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if _, ok := banksByBIN[s]; ok {
		return s, true
	}
	if b, ok := LookupBankByCode(s); ok {
		return b.BIN, true
	}
	if isBIN(s) {
		return s, true
	}
	return "", false
}

// Banks returns the known banks sorted by short name.
func Banks() []Bank {
	out := make([]Bank, len(sortedBanks))
	copy(out, sortedBanks)
	return out
}

func isBIN(s string) bool {
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
