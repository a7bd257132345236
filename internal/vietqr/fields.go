package vietqr

import "strings"

var topLevelNames = map[string]string{
	TagPayloadFormat:    "Payload format indicator",
	TagInitiationMethod: "Point of initiation method",
	TagMerchantAccount:  "Merchant account information",
	TagMerchantCategory: "Merchant category code",
	TagCurrency:         "Transaction currency",
	TagAmount:           "Transaction amount",
	TagCountry:          "Country code",
	TagAdditionalData:   "Additional data",
	TagCRC:              "CRC",
}

var nestedNames = map[string]map[string]string{
	TagMerchantAccount: {
		tagGUID:        "GUID",
		tagBeneficiary: "Beneficiary organization",
		tagService:     "Service code",
	},
	TagMerchantAccount + tagBeneficiary: {
		tagBankBIN: "Acquirer BIN",
		tagAccount: "Account number",
	},
	TagAdditionalData: {
		tagPurpose: "Purpose of transaction",
	},
}

// FieldName returns a human readable name for a field. path lists the tags of
// the enclosing fields, outermost first, followed by the field's own tag, so
// FieldName("38", "01", "00") is the acquirer BIN.
func FieldName(path ...string) string {
	if len(path) == 0 {
		return ""
	}
	tag := path[len(path)-1]
	if len(path) == 1 {
		return topLevelNames[tag]
	}

	return nestedNames[strings.Join(path[:len(path)-1], "")][tag]
}

// IsTemplate reports whether the field at path holds nested TLV data.
func IsTemplate(path ...string) bool {
	if len(path) == 0 {
		return false
	}
	_, ok := nestedNames[strings.Join(path, "")]
	return ok
}
