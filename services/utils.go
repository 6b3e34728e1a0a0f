package services

func StrPointer(str string) *string {
	if str == "" {
		return nil
	}
	return &str
}

func IntPointer(i int) *int {
	return &i
}

func BoolPointer(b bool) *bool {
	return &b
}
