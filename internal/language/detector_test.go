package language

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "english",
			text: "The product stopped working after a week and I am very disappointed",
			want: LanguageEnglish,
		},
		{
			name: "spanish",
			text: "El producto dejó de funcionar después de una semana y estoy muy decepcionado",
			want: LanguageSpanish,
		},
		{
			name: "french",
			text: "Le produit a cessé de fonctionner après une semaine et je suis très déçu",
			want: LanguageFrench,
		},
		{
			name: "german maps to other",
			text: "Das Produkt funktioniert nicht mehr und ich bin sehr enttäuscht von diesem Kauf",
			want: LanguageOther,
		},
		{
			name: "empty text",
			text: "",
			want: LanguageOther,
		},
		{
			name: "digits only",
			text: "1234567890",
			want: LanguageOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.text)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
