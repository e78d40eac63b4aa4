package math

// Mat3 is a 3x3 matrix in column-major order, used for rotations.
type Mat3 [9]float32

// Identity3 returns a 3x3 identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromRows builds a matrix from row-major rows, the way it is written on paper.
func Mat3FromRows(rows [3][3]float32) Mat3 {
	var m Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m[col*3+row] = rows[row][col]
		}
	}
	return m
}

// At returns the element at the given row and column.
func (m Mat3) At(row, col int) float32 {
	return m[col*3+row]
}

// Transpose returns the transpose of the matrix.
// For an orthonormal rotation this is also its inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Mat4 embeds the matrix in the upper-left corner of a 4x4 identity.
func (m Mat3) Mat4() Mat4 {
	return Mat4{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
		0, 0, 0, 1,
	}
}
