package entity

// Municipality entrada de la tabla de códigos catastrales (comune → código Belfiore).
type Municipality struct {
	Name          string
	CadastralCode string // 4 caracteres alfanuméricos, ej. H501
	Province      string // sigla de 2 letras, ej. RM
}
