package templates

// CSStempl is our css template sheet
var CSStempl = []byte(`body {
  font-family: 'Lucida Sans', Arial, sans-serif;
  margin: 0 30px;
}

h1 {
  color: #000;
  font-family: 'Lato', sans-serif;
  font-size: 32px;
  font-weight: 300;
  line-height: 58px;
  margin: 0 0 24px;
}

h2 {
  font-family: 'Lato', sans-serif;
  font-size: 22px;
  font-weight: 300;
  margin: 24px 0 8px;
}

table {
  border-collapse: collapse;
  margin-bottom: 24px;
}

table, td, th {
  border: 1px solid #ddd;
  text-align: left;
}

th {
  background-color: #000;
  color: white;
}

th, td {
  padding: 6px 15px;
}

tr:nth-child(even) {
  background-color: #f2f2f2;
}
`)
